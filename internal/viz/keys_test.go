package viz

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/tixyva/internal/live"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []live.Key
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []live.Key{{Code: live.KeyInterrupt}}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []live.Key{{Code: live.KeyEnter}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []live.Key{{Code: live.KeyEscape}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []live.Key{{Code: live.KeyBackspace}}},
		{"ctrl+u clears", tea.KeyMsg{Type: tea.KeyCtrlU}, []live.Key{{Code: live.KeyBackspace, Shift: true}}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []live.Key{{Code: live.KeyUp}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []live.Key{live.RuneKey(' ')}},
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, []live.Key{live.RuneKey('x')}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x*y")}, []live.Key{live.RuneKey('x'), live.RuneKey('*'), live.RuneKey('y')}},
		{"ignored", tea.KeyMsg{Type: tea.KeyTab}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translate(tt.msg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("translate = %+v, want %+v", got, tt.want)
			}
		})
	}
}
