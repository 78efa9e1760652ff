package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// NewPlot builds the scatterplot with the fitted curve and its legend.
func NewPlot(fig Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = fig.XLabel()
	p.Y.Label.Text = fig.YLabel()
	p.Legend.Top = true

	if pts := samplePoints(fig.Samples.X, fig.Samples.Y); len(pts) > 0 {
		if err := plotutil.AddScatters(p, "Samples", pts); err != nil {
			return nil, err
		}
	}

	curve := fig.curve()
	if len(curve) < 2 {
		// nothing drawable, e.g. a power model over non-positive x
		return p, nil
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.Black
	p.Add(line)
	p.Legend.Add(ModelLabel(fig.Choice), line)
	return p, nil
}

// SavePlot writes the figure to path. The extension picks the format (png,
// svg, pdf, eps, jpg, tif).
func SavePlot(fig Figure, path string, w, h vg.Length) error {
	p, err := NewPlot(fig)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return p.Save(w, h, path)
}

// WritePlot encodes the figure in format ("png", "svg", ...) to out.
func WritePlot(out io.Writer, fig Figure, format string, w, h vg.Length) error {
	p, err := NewPlot(fig)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(w, h, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("plot format %q: %w", format, err)
	}
	_, err = wt.WriteTo(out)
	return err
}
