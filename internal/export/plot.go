// Package export writes simulated series to image and audio files.
package export

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WritePlot renders the series as a line plot. The output format follows the
// file extension (.png, .svg, .pdf).
func WritePlot(path, title, xlabel, ylabel string, times, values []float64) error {
	if len(times) != len(values) {
		return fmt.Errorf("export: %d times vs %d values", len(times), len(values))
	}
	if len(values) == 0 {
		return fmt.Errorf("export: no data to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	return p.Save(10*vg.Inch, 4*vg.Inch, path)
}
