package live

import (
	"time"

	"github.com/san-kum/tixyva/internal/script"
)

// Mode is either Running or Editing.
type Mode interface {
	// Text is the script source the mode was built from.
	Text() string
	isMode()
}

// Running animates a successfully compiled script.
type Running struct {
	Program *script.Program
	Start   time.Time
	Source  string
}

// Editing holds the text being edited and, when the mode was entered
// because of a failure, the error that caused it.
type Editing struct {
	Source string
	Err    error
}

func (r Running) Text() string { return r.Source }
func (e Editing) Text() string { return e.Source }

func (Running) isMode() {}
func (Editing) isMode() {}

// Construct compiles text. A script that does not compile becomes an
// Editing mode holding the text verbatim and the compile error.
func Construct(text string, now time.Time) Mode {
	prog, err := script.Compile(text)
	if err != nil {
		return Editing{Source: text, Err: err}
	}
	return Running{Program: prog, Start: now, Source: text}
}
