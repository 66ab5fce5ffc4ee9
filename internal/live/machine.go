package live

import (
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/tixyva/internal/canvas"
	"github.com/san-kum/tixyva/internal/editor"
	"github.com/san-kum/tixyva/internal/patterns"
)

type Machine struct {
	mode    Mode
	canvas  canvas.Canvas
	editor  *editor.Editor
	library patterns.Library

	width, height int
	now           func() time.Time
	log           *slog.Logger
}

type Option func(*Machine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// WithSize sets the canvas dimensions.
func WithSize(w, h int) Option {
	return func(m *Machine) { m.width, m.height = w, h }
}

// New builds a machine on a blank canvas running the first pattern of lib.
func New(lib patterns.Library, opts ...Option) *Machine {
	m := &Machine{
		library: lib,
		width:   canvas.DefaultWidth,
		height:  canvas.DefaultHeight,
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.canvas = canvas.New(m.width, m.height)

	var first string
	if p, ok := lib.Get(0); ok {
		first = p.Source
	}
	m.enter(Construct(first, m.now()))
	return m
}

func (m *Machine) Mode() Mode { return m.mode }

func (m *Machine) Canvas() canvas.Canvas { return m.canvas }

// Editor is the edit buffer, or nil while running.
func (m *Machine) Editor() *editor.Editor { return m.editor }

func (m *Machine) Library() patterns.Library { return m.library }

func (m *Machine) Running() bool {
	_, ok := m.mode.(Running)
	return ok
}

// Elapsed is the script time of the running mode.
func (m *Machine) Elapsed() float64 {
	r, ok := m.mode.(Running)
	if !ok {
		return 0
	}
	return m.now().Sub(r.Start).Seconds()
}

// Step computes one frame. It does nothing while editing. On failure the
// canvas is left as it was and the machine switches to Editing; the error
// is returned for the caller to log or display.
func (m *Machine) Step(volume float64) error {
	r, ok := m.mode.(Running)
	if !ok {
		return nil
	}
	next, err := Advance(r.Program, m.canvas, m.now().Sub(r.Start).Seconds(), volume)
	if err != nil {
		m.log.Warn("frame failed", "source", r.Source, "err", err)
		m.enter(Editing{Source: r.Source, Err: err})
		return err
	}
	m.canvas = next
	return nil
}

// HandleKey applies one key event.
func (m *Machine) HandleKey(k Key) Action {
	if k.Code == KeyInterrupt {
		return ActionQuit
	}
	switch mode := m.mode.(type) {
	case Running:
		return m.runningKey(mode, k)
	case Editing:
		return m.editingKey(mode, k)
	}
	return ActionNone
}

func (m *Machine) runningKey(r Running, k Key) Action {
	switch {
	case k.Code == KeyEscape:
		m.enter(Editing{Source: r.Source})
		return ActionRedraw
	case k.Code == KeyRune && k.Rune >= '0' && k.Rune <= '9':
		p, ok := m.library.Get(int(k.Rune - '0'))
		if !ok {
			return ActionNone
		}
		m.log.Info("pattern selected", "index", int(k.Rune-'0'), "name", p.Name)
		m.enter(Construct(p.Source, m.now()))
		m.resetCanvas()
		return ActionRedraw
	}
	return ActionNone
}

func (m *Machine) editingKey(e Editing, k Key) Action {
	ed := m.editor
	switch k.Code {
	case KeyEnter:
		m.enter(Construct(ed.Text(), m.now()))
		m.resetCanvas()
	case KeyEscape:
		// discard the edit; the canvas is kept
		m.enter(Construct(e.Source, m.now()))
	case KeyRune:
		ed.Insert(k.Rune, k.Shift)
	case KeyBackspace:
		if k.Shift {
			ed.Clear()
		} else {
			ed.Backspace()
		}
	case KeyLeft:
		ed.Left()
	case KeyRight:
		ed.Right()
	case KeyUp:
		ed.Home()
	case KeyDown:
		ed.End()
	default:
		return ActionNone
	}
	return ActionRedraw
}

// Load replaces the running script as if it had been typed and committed.
// It is ignored while editing and reports whether it was applied.
func (m *Machine) Load(text string) bool {
	if !m.Running() {
		return false
	}
	m.enter(Construct(text, m.now()))
	m.resetCanvas()
	return true
}

func (m *Machine) enter(mode Mode) {
	m.mode = mode
	switch mode := mode.(type) {
	case Running:
		m.editor = nil
		m.log.Info("script running", "source", mode.Source)
	case Editing:
		m.editor = editor.New(mode.Source)
		if mode.Err != nil {
			m.log.Warn("script stopped", "source", mode.Source, "err", mode.Err)
		} else {
			m.log.Debug("editing", "source", mode.Source)
		}
	}
}

func (m *Machine) resetCanvas() {
	m.canvas = canvas.New(m.width, m.height)
}
