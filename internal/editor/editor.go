// Package editor implements the single-line script editor shown while the
// animation is paused.
//
// The cursor is an index into the buffer counted in runes: 0 is before the
// first character and Len() is after the last. Combining characters and
// other multi-rune graphemes are not treated specially.
package editor

import "unicode"

type Editor struct {
	buf    []rune
	cursor int
}

// New starts an editor holding text with the cursor at the end.
func New(text string) *Editor {
	buf := []rune(text)
	return &Editor{buf: buf, cursor: len(buf)}
}

func (e *Editor) Text() string { return string(e.buf) }

func (e *Editor) Cursor() int { return e.cursor }

func (e *Editor) Len() int { return len(e.buf) }

// Insert places r before the cursor and advances it. shift uppercases r,
// standing in for terminals that report the modifier separately.
func (e *Editor) Insert(r rune, shift bool) {
	if shift {
		r = unicode.ToUpper(r)
	}
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
}

// Backspace deletes the rune before the cursor.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
}

// Clear empties the buffer.
func (e *Editor) Clear() {
	e.buf = e.buf[:0]
	e.cursor = 0
}

func (e *Editor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) Right() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
}

// Home moves to the start of the buffer.
func (e *Editor) Home() { e.cursor = 0 }

// End moves past the last rune.
func (e *Editor) End() { e.cursor = len(e.buf) }

// Split returns the text before and after the cursor, for rendering.
func (e *Editor) Split() (before, after string) {
	return string(e.buf[:e.cursor]), string(e.buf[e.cursor:])
}
