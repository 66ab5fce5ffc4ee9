// Package canvas holds the scalar grid that scripts paint into.
package canvas

import "math"

const (
	DefaultWidth  = 32
	DefaultHeight = 32
)

// Canvas is a row-major grid of accumulator values. Cell (x, y) lives at
// index y*Width + x.
type Canvas struct {
	Width, Height int
	Cells         []float64
}

func New(w, h int) Canvas {
	return Canvas{
		Width:  w,
		Height: h,
		Cells:  make([]float64, w*h),
	}
}

// Blank returns an all-zero canvas of the default size.
func Blank() Canvas {
	return New(DefaultWidth, DefaultHeight)
}

// Clone returns a deep copy. Frames are written into a clone and only
// swapped in once every cell evaluated successfully.
func (c Canvas) Clone() Canvas {
	cells := make([]float64, len(c.Cells))
	copy(cells, c.Cells)
	return Canvas{Width: c.Width, Height: c.Height, Cells: cells}
}

func (c Canvas) Len() int { return len(c.Cells) }

func (c Canvas) Index(x, y int) int { return y*c.Width + x }

// Coord is the inverse of Index.
func (c Canvas) Coord(i int) (x, y int) {
	return i % c.Width, i / c.Width
}

func (c Canvas) At(x, y int) float64 {
	return c.Cells[c.Index(x, y)]
}

// IsBlank reports whether every cell is exactly zero.
func (c Canvas) IsBlank() bool {
	for _, v := range c.Cells {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal compares size and cell values. NaN cells compare equal to NaN.
func (c Canvas) Equal(o Canvas) bool {
	if c.Width != o.Width || c.Height != o.Height || len(c.Cells) != len(o.Cells) {
		return false
	}
	for i, v := range c.Cells {
		w := o.Cells[i]
		if v == w || (math.IsNaN(v) && math.IsNaN(w)) {
			continue
		}
		return false
	}
	return true
}

// Stats summarizes the finite cells of a canvas.
type Stats struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	NonFinite int     `json:"non_finite"`
}

func (c Canvas) Stats() Stats {
	var s Stats
	n := 0
	sum := 0.0
	for _, v := range c.Cells {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.NonFinite++
			continue
		}
		if n == 0 || v < s.Min {
			s.Min = v
		}
		if n == 0 || v > s.Max {
			s.Max = v
		}
		sum += v
		n++
	}
	if n > 0 {
		s.Mean = sum / float64(n)
	}
	return s
}
