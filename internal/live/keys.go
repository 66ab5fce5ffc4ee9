package live

// KeyCode identifies the keys the machine reacts to.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyInterrupt
)

// Key is a terminal-independent key event. Shift on KeyBackspace clears the
// whole edit buffer.
type Key struct {
	Code  KeyCode
	Rune  rune
	Shift bool
}

// RuneKey is a plain character key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Action tells the main loop what to do after a key was handled.
type Action int

const (
	ActionNone Action = iota
	ActionRedraw
	ActionQuit
)
