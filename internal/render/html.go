package render

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// MaxHTMLSamples caps the scatter points embedded in the page; larger
// samples are thinned with a fixed stride.
const MaxHTMLSamples = 20000

// WriteHTML renders an interactive page: the samples as a scatter series and
// the fitted curve as an overlapped line.
func WriteHTML(w io.Writer, fig Figure) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: Title, Width: "960px", Height: "640px"}),
		charts.WithTitleOpts(opts.Title{Title: Title, Subtitle: ModelLabel(fig.Choice)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel(), Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YLabel(), Type: "value", Scale: opts.Bool(true)}),
	)

	pts := samplePoints(fig.Samples.X, fig.Samples.Y)
	stride := 1
	if len(pts) > MaxHTMLSamples {
		stride = (len(pts) + MaxHTMLSamples - 1) / MaxHTMLSamples
	}
	sd := make([]opts.ScatterData, 0, len(pts)/stride+1)
	for i := 0; i < len(pts); i += stride {
		sd = append(sd, opts.ScatterData{Value: []interface{}{pts[i].X, pts[i].Y}, SymbolSize: 4})
	}
	scatter.AddSeries("Samples", sd)

	curve := fig.curve()
	if len(curve) >= 2 {
		ld := make([]opts.LineData, len(curve))
		for i, p := range curve {
			ld[i] = opts.LineData{Value: []interface{}{p.X, p.Y}}
		}
		line := charts.NewLine()
		line.AddSeries(ModelLabel(fig.Choice), ld,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: "#000000", Width: 2}),
		)
		scatter.Overlap(line)
	}

	page := components.NewPage()
	page.PageTitle = Title
	page.AddCharts(scatter)
	return page.Render(w)
}

// SaveHTML writes WriteHTML output to path.
func SaveHTML(fig Figure, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteHTML(f, fig); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
