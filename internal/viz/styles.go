package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffff"))
	subtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	statusRun   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusEdit  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	metricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	metricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")).Italic(true)
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Level renders a value in [0, 1] as one sparkline character.
func Level(v float64) string {
	idx := int(v * float64(len(sparkChars)-1))
	if idx >= len(sparkChars) {
		idx = len(sparkChars) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return string(sparkChars[idx])
}

// Separator is a horizontal rule of the given width.
func Separator(width int) string {
	if width < 1 {
		return ""
	}
	return subtle.Render(strings.Repeat("─", width))
}
