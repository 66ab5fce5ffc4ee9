package viz

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/tixyva/internal/live"
)

type keyMap struct {
	Edit     key.Binding
	Pattern  key.Binding
	Snapshot key.Binding
	Commit   key.Binding
	Discard  key.Binding
	Clear    key.Binding
	Move     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Edit:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "edit")),
	Pattern:  key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "pattern")),
	Snapshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "snapshot")),
	Commit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Discard:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
	Move:     key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←→↑↓", "move")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

func (k keyMap) running() []key.Binding {
	return []key.Binding{k.Edit, k.Pattern, k.Snapshot, k.Quit}
}

func (k keyMap) editing() []key.Binding {
	return []key.Binding{k.Commit, k.Discard, k.Clear, k.Move, k.Quit}
}

// translate converts a terminal key event into machine keys. Pasted text
// arrives as one message and yields one key per rune. Terminals do not
// report shift+backspace, so ctrl+u stands in for it.
func translate(msg tea.KeyMsg) []live.Key {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []live.Key{{Code: live.KeyInterrupt}}
	case tea.KeyEnter:
		return []live.Key{{Code: live.KeyEnter}}
	case tea.KeyEsc:
		return []live.Key{{Code: live.KeyEscape}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []live.Key{{Code: live.KeyBackspace}}
	case tea.KeyCtrlU:
		return []live.Key{{Code: live.KeyBackspace, Shift: true}}
	case tea.KeyLeft:
		return []live.Key{{Code: live.KeyLeft}}
	case tea.KeyRight:
		return []live.Key{{Code: live.KeyRight}}
	case tea.KeyUp:
		return []live.Key{{Code: live.KeyUp}}
	case tea.KeyDown:
		return []live.Key{{Code: live.KeyDown}}
	case tea.KeySpace:
		return []live.Key{live.RuneKey(' ')}
	case tea.KeyRunes:
		out := make([]live.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, live.RuneKey(r))
		}
		return out
	}
	return nil
}
