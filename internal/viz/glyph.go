package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tixyva/internal/canvas"
)

// Glyphs are the fill levels from empty to full.
var Glyphs = []rune{' ', '.', '+', '#', '░', '▒', '▓', '█'}

// Tone is the colour class of a cell.
type Tone int

const (
	ToneZero Tone = iota
	TonePositive
	ToneNegative
)

// Bucket maps a value to an index into Glyphs. NaN is drawn empty.
func Bucket(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	b := int(math.Min(math.Abs(v), 1) * float64(len(Glyphs)))
	if b > len(Glyphs)-1 {
		b = len(Glyphs) - 1
	}
	return b
}

// ToneOf classifies v. NaN compares false against zero and falls through
// to the negative colour.
func ToneOf(v float64) Tone {
	switch {
	case v == 0:
		return ToneZero
	case v > 0:
		return TonePositive
	default:
		return ToneNegative
	}
}

// Cell is the two-column text for one value.
func Cell(v float64) string {
	g := Glyphs[Bucket(v)]
	return string([]rune{g, g})
}

func (t Theme) color(tone Tone) lipgloss.Color {
	switch tone {
	case TonePositive:
		return t.Positive
	case ToneNegative:
		return t.Negative
	}
	return t.Background
}

// RenderCanvas draws c with colours from th, one text line per row. Runs of
// cells sharing a tone are styled together.
func RenderCanvas(c canvas.Canvas, th Theme) string {
	styles := [3]lipgloss.Style{}
	for _, tone := range []Tone{ToneZero, TonePositive, ToneNegative} {
		styles[tone] = lipgloss.NewStyle().Foreground(th.color(tone))
	}

	var b strings.Builder
	var run strings.Builder
	for y := 0; y < c.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		cur := ToneZero
		for x := 0; x < c.Width; x++ {
			v := c.At(x, y)
			tone := ToneOf(v)
			if tone != cur && run.Len() > 0 {
				b.WriteString(styles[cur].Render(run.String()))
				run.Reset()
			}
			cur = tone
			run.WriteString(Cell(v))
		}
		if run.Len() > 0 {
			b.WriteString(styles[cur].Render(run.String()))
			run.Reset()
		}
	}
	return b.String()
}

// PlainCanvas draws c without colour.
func PlainCanvas(c canvas.Canvas) string {
	var b strings.Builder
	for y := 0; y < c.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.Width; x++ {
			b.WriteString(Cell(c.At(x, y)))
		}
	}
	return b.String()
}
