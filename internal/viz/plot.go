// Package viz renders simulated series in the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// RenderSeries draws data as an ASCII line plot with a caption.
func RenderSeries(data []float64, caption string) string {
	if len(data) == 0 {
		return "no data"
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// RenderStats formats a label/value panel in run listings and plots.
func RenderStats(pairs [][2]string) string {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(labelStyle.Render(p[0]))
		sb.WriteString(valueStyle.Render(p[1]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Header renders a section title.
func Header(text string) string {
	return headerStyle.Render(text)
}

// FormatValue prints a float compactly for stat panels.
func FormatValue(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
