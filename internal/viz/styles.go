package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(statsWidth)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusIdle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

// canvasStyle paints the drawing area in the theme colours.
func canvasStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Fore).Background(t.Back)
}

func headerStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginBottom(1)
}

// ProgressBar renders a 0..1 fraction as a bar in the theme accent.
func ProgressBar(t Theme, fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(t.Accent).Render(bar)
}

// NodeStrip shows every node as a cell: filled when unfolded, a marker on
// the current one.
func NodeStrip(t Theme, settled []float32, current int) string {
	var b strings.Builder
	on := lipgloss.NewStyle().Foreground(t.Fore)
	off := lipgloss.NewStyle().Foreground(t.Muted)
	for i, s := range settled {
		glyph := "□"
		if s >= 1 {
			glyph = "■"
		}
		if i == current {
			b.WriteString(on.Bold(true).Render("[" + glyph + "]"))
			continue
		}
		if s >= 1 {
			b.WriteString(on.Render(" " + glyph + " "))
		} else {
			b.WriteString(off.Render(" " + glyph + " "))
		}
	}
	return b.String()
}
