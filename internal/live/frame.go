package live

import (
	"time"

	"github.com/san-kum/tixyva/internal/canvas"
	"github.com/san-kum/tixyva/internal/script"
)

// Advance evaluates p for every cell of prev and returns the next canvas.
// prev is never modified. If any cell fails the partial result is dropped
// and a *FrameError is returned.
func Advance(p *script.Program, prev canvas.Canvas, t, volume float64) (canvas.Canvas, error) {
	next := prev.Clone()
	for i, a := range prev.Cells {
		x, y := prev.Coord(i)
		val, err := p.Eval(script.Bindings{
			T: t,
			I: float64(i),
			X: float64(x),
			Y: float64(y),
			V: volume,
			A: a,
		})
		if err != nil {
			return canvas.Canvas{}, &FrameError{Index: i, Wrapped: err}
		}
		next.Cells[i] = val
	}
	return next, nil
}

// FrameDelay is how long to wait before the next frame so frames start
// every budget. Overruns are not caught up.
func FrameDelay(budget, elapsed time.Duration) time.Duration {
	if elapsed >= budget {
		return 0
	}
	return budget - elapsed
}

// FrameBudget converts a frame rate to a per-frame duration.
func FrameBudget(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

const DefaultFPS = 30
