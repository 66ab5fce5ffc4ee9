package viz

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tixyva/internal/audio"
	"github.com/san-kum/tixyva/internal/live"
	"github.com/san-kum/tixyva/internal/storage"
	"github.com/san-kum/tixyva/internal/watch"
)

const prompt = "(t,i,x,y,v,a)=>"

// Options configures the terminal program.
type Options struct {
	Machine *live.Machine
	Meter   audio.Meter
	Theme   Theme
	FPS     int

	// Store receives ctrl+s snapshots; nil disables them.
	Store *storage.Store
	// Updates carries watched script files; nil when not watching.
	Updates <-chan watch.Update

	Log *slog.Logger
}

type frameMsg struct{ seq int }

type scriptMsg watch.Update

type Model struct {
	machine *live.Machine
	meter   audio.Meter
	theme   Theme
	budget  time.Duration
	store   *storage.Store
	updates <-chan watch.Update
	log     *slog.Logger

	// seq identifies the current frame chain; frames from older chains
	// are dropped so exactly one is ever scheduled.
	seq     int
	ticking bool

	frames    int
	fps       float64
	lastFrame time.Time

	flash string
	help  help.Model
	width int
}

func NewModel(o Options) Model {
	if o.Meter == nil {
		o.Meter = audio.Silent{}
	}
	if o.Theme.Name == "" {
		o.Theme = ThemeLavender
	}
	if o.Log == nil {
		o.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(o.Theme.Prompt)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(o.Theme.Muted)
	return Model{
		machine: o.Machine,
		meter:   o.Meter,
		theme:   o.Theme,
		budget:  live.FrameBudget(o.FPS),
		store:   o.Store,
		updates: o.Updates,
		log:     o.Log,
		help:    h,
	}
}

// Init cannot keep state, so the first frame carries seq 0 and ticking is
// marked when it arrives.
func (m Model) Init() tea.Cmd {
	var first tea.Cmd
	if m.machine.Running() {
		first = m.frameAfter(0)
	}
	return tea.Batch(first, m.waitScript())
}

// resume starts a new frame chain when the machine runs and none is active.
func (m *Model) resume() tea.Cmd {
	if !m.machine.Running() || m.ticking {
		return nil
	}
	m.ticking = true
	m.seq++
	m.lastFrame = time.Time{}
	return m.frameAfter(0)
}

func (m Model) frameAfter(d time.Duration) tea.Cmd {
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg { return frameMsg{seq: seq} })
}

func (m Model) waitScript() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	ch := m.updates
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return scriptMsg(u)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.ticking = true
		return m, m.step()

	case scriptMsg:
		if m.machine.Load(msg.Source) {
			m.flash = "loaded " + msg.Path
		}
		m.syncTicking()
		return m, tea.Batch(m.resume(), m.waitScript())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// step renders one frame and schedules the next while running.
func (m *Model) step() tea.Cmd {
	if !m.machine.Running() {
		m.ticking = false
		return nil
	}
	start := time.Now()
	if !m.lastFrame.IsZero() {
		if dt := start.Sub(m.lastFrame).Seconds(); dt > 0 {
			m.fps = 0.9*m.fps + 0.1/dt
		}
	}
	m.lastFrame = start

	if err := m.machine.Step(m.meter.Volume()); err != nil {
		m.ticking = false
		return nil
	}
	m.frames++
	return m.frameAfter(live.FrameDelay(m.budget, time.Since(start)))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.machine.Running() && key.Matches(msg, keys.Snapshot) {
		m.snapshot()
		return m, nil
	}
	m.flash = ""
	for _, k := range translate(msg) {
		if m.machine.HandleKey(k) == live.ActionQuit {
			return m, tea.Quit
		}
	}
	m.syncTicking()
	return m, m.resume()
}

// syncTicking invalidates the frame chain once the machine stops running,
// so no frame is computed while editing.
func (m *Model) syncTicking() {
	if !m.machine.Running() && m.ticking {
		m.ticking = false
		m.seq++
	}
}

func (m *Model) snapshot() {
	if m.store == nil {
		m.flash = "snapshots disabled"
		return
	}
	src := m.machine.Mode().Text()
	snap, err := m.store.Save(storage.Snapshot{
		Source: src,
		Time:   m.machine.Elapsed(),
		Frames: m.frames,
		Volume: m.meter.Volume(),
	}, m.machine.Canvas())
	if err != nil {
		m.log.Error("snapshot failed", "err", err)
		m.flash = "snapshot failed: " + err.Error()
		return
	}
	m.log.Info("snapshot saved", "id", snap.ID)
	m.flash = "saved " + snap.ID[:8]
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.status())
	b.WriteString("\n\n")
	b.WriteString(RenderCanvas(m.machine.Canvas(), m.theme))
	b.WriteString("\n\n")

	if e, ok := m.machine.Mode().(live.Editing); ok && e.Err != nil {
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
		if m.width > 0 {
			errStyle = errStyle.Width(m.width)
		}
		b.WriteString(errStyle.Render(e.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.promptLine())
	b.WriteString("\n\n")

	if m.machine.Running() {
		b.WriteString(m.help.ShortHelpView(keys.running()))
	} else {
		b.WriteString(m.help.ShortHelpView(keys.editing()))
	}
	return b.String()
}

func (m Model) status() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("tixyva"))
	b.WriteString("  ")
	if m.machine.Running() {
		b.WriteString(statusRun.Render("● running"))
		b.WriteString("  ")
		b.WriteString(metricLabel.Render("t "))
		b.WriteString(metricValue.Render(fmt.Sprintf("%.1fs", m.machine.Elapsed())))
		b.WriteString("  ")
		b.WriteString(metricValue.Render(fmt.Sprintf("%.0f", m.fps)))
		b.WriteString(metricLabel.Render(" fps"))
	} else {
		b.WriteString(statusEdit.Render("✎ editing"))
	}

	bands := m.meter.Bands()
	b.WriteString("  ")
	b.WriteString(metricLabel.Render("v "))
	b.WriteString(metricValue.Render(fmt.Sprintf("%.2f", m.meter.Volume())))
	b.WriteString(" ")
	b.WriteString(metricValue.Render(Level(bands.Bass) + Level(bands.Mid) + Level(bands.High)))

	if m.flash != "" {
		b.WriteString("  ")
		b.WriteString(flashStyle.Render(m.flash))
	}
	return b.String()
}

func (m Model) promptLine() string {
	p := lipgloss.NewStyle().Foreground(m.theme.Prompt).Render(prompt)
	text := lipgloss.NewStyle().Foreground(m.theme.Text)

	ed := m.machine.Editor()
	if ed == nil {
		return p + " " + subtle.Render(m.machine.Mode().Text())
	}
	before, after := ed.Split()
	at := " "
	if r := []rune(after); len(r) > 0 {
		at, after = string(r[0]), string(r[1:])
	}
	cursor := lipgloss.NewStyle().Reverse(true)
	return p + " " + text.Render(before) + cursor.Render(at) + text.Render(after)
}

// Run drives the terminal until the user quits.
func Run(o Options) error {
	p := tea.NewProgram(NewModel(o), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
