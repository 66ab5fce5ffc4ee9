package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/tixyva/internal/canvas"
	"github.com/san-kum/tixyva/internal/viz"
)

// CanvasToSVG draws each cell as a circle whose radius follows its glyph
// level, coloured the way the terminal colours it. scale is the cell size
// in pixels.
func CanvasToSVG(c canvas.Canvas, th viz.Theme, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := float64(c.Width) * scale
	height := float64(c.Height) * scale
	levels := float64(len(viz.Glyphs) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, th.Background))

	for i, v := range c.Cells {
		b := viz.Bucket(v)
		if b == 0 {
			continue
		}
		fill := th.Positive
		if viz.ToneOf(v) == viz.ToneNegative {
			fill = th.Negative
		}
		x, y := c.Coord(i)
		r := float64(b) / levels * scale / 2
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, r, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
