package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/ntsquare/internal/chain"
	"github.com/san-kum/ntsquare/internal/shape"
)

// FrameToSVG draws one frame's segments as stroked lines over a filled
// background, sized to the layout.
func FrameToSVG(layout shape.Layout, frames []chain.Frame, fore, back string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="%s" stroke-width="%.2f" stroke-linecap="round" fill="none">
`, layout.Width, layout.Height, layout.Width, layout.Height, back, fore, layout.StrokeWidth()))

	for _, seg := range layout.Frame(frames) {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
`, seg.X1, seg.Y1, seg.X2, seg.Y2))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots scale series (one per node) over ticks as polylines.
// Values are expected in 0..1.
func SeriesToSVG(series [][]float64, width, height int, colors []string) string {
	longest := 0
	for _, s := range series {
		if len(s) > longest {
			longest = len(s)
		}
	}
	if longest < 2 {
		return ""
	}
	if len(colors) == 0 {
		colors = []string{"#FF5722"}
	}

	pad := float64(height) * 0.1
	plotH := float64(height) - 2*pad
	stepX := float64(width) / float64(longest-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, s := range series {
		if len(s) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, colors[i%len(colors)]))
		for j, v := range s {
			x := float64(j) * stepX
			y := pad + plotH*(1-v)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
