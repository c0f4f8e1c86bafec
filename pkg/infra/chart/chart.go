package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/secmon-lab/vulntrend/pkg/domain/interfaces"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
)

const (
	chartWidth  = 24 * vg.Centimeter
	chartHeight = 16 * vg.Centimeter
)

var barWidth = vg.Points(14)

// Renderer renders comparison charts as PNG files under a figure directory.
type Renderer struct {
	figDir string
}

var _ interfaces.ChartRenderer = (*Renderer)(nil)

func New(figDir string) *Renderer {
	return &Renderer{figDir: figDir}
}

func (x *Renderer) path(name string) (string, error) {
	if err := os.MkdirAll(x.figDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create figure directory", goerr.V("dir", x.figDir))
	}
	return filepath.Join(x.figDir, name), nil
}

// RenderDensity draws the density-by-image bar chart: grouped bars across
// timepoints, or a single series when only T0 is present.
func (x *Renderer) RenderDensity(ctx context.Context, chart *model.DensityChart) (string, error) {
	p := plot.New()
	p.Y.Label.Text = "Vulnerability density (CRITICAL+HIGH per MB)"
	if chart.SingleTimepoint {
		p.Title.Text = "Density by image (T0)"
	} else {
		p.Title.Text = "Density by image across timepoints (T0-T3)"
	}

	for i, series := range chart.Series {
		// absent cells draw no bar at their slot
		vals := make(plotter.Values, len(series.Values))
		for j, v := range series.Values {
			if series.Present[j] {
				vals[j] = v
			}
		}
		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return "", goerr.Wrap(err, "failed to build density bars", goerr.V("series", series.Name))
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		bars.Offset = barWidth*vg.Length(i) - barWidth*vg.Length(len(chart.Series)-1)/2
		p.Add(bars)
		if !chart.SingleTimepoint {
			p.Legend.Add(series.Name, bars)
		}
	}
	p.Legend.Top = true
	p.NominalX(chart.Images...)

	name := "density_T0_T3.png"
	if chart.SingleTimepoint {
		name = "density_T0_only.png"
	}
	path, err := x.path(name)
	if err != nil {
		return "", err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return "", goerr.Wrap(err, "failed to save density chart", goerr.V("path", path))
	}
	return path, nil
}

// RenderCVESeries draws one critical/high line chart over timepoints for a
// single image.
func (x *Renderer) RenderCVESeries(ctx context.Context, chart *model.TimeSeriesChart) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("CVEs over time: %s", chart.Image)
	p.X.Label.Text = "Timepoint"
	p.Y.Label.Text = "Count"

	critical := make(plotter.XYs, len(chart.Timepoints))
	high := make(plotter.XYs, len(chart.Timepoints))
	ticks := make([]plot.Tick, len(chart.Timepoints))
	for i, tp := range chart.Timepoints {
		critical[i] = plotter.XY{X: float64(i), Y: chart.Critical[i]}
		high[i] = plotter.XY{X: float64(i), Y: chart.High[i]}
		ticks[i] = plot.Tick{Value: float64(i), Label: tp.String()}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)

	if err := plotutil.AddLinePoints(p, "CRITICAL", critical, "HIGH", high); err != nil {
		return "", goerr.Wrap(err, "failed to build CVE time series", goerr.V("image", chart.Image))
	}

	path, err := x.path(fmt.Sprintf("cves_over_time_%s.png", sanitize(chart.Image)))
	if err != nil {
		return "", err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return "", goerr.Wrap(err, "failed to save CVE time series", goerr.V("path", path))
	}
	return path, nil
}

// RenderDeltaDensity draws the T3-vs-T0 density change bars.
func (x *Renderer) RenderDeltaDensity(ctx context.Context, chart *model.DeltaChart) (string, error) {
	p := plot.New()
	p.Title.Text = "Change in vulnerability density from T0 to T3"
	p.Y.Label.Text = "Delta density (T3 - T0)"

	bars, err := plotter.NewBarChart(plotter.Values(chart.Deltas), barWidth)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build delta density bars")
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(chart.Images...)

	path, err := x.path("delta_density_T3_vs_T0.png")
	if err != nil {
		return "", err
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return "", goerr.Wrap(err, "failed to save delta density chart", goerr.V("path", path))
	}
	return path, nil
}

// sanitize keeps image-derived file names free of path separators. The
// short_image fallback can be a full reference with "/" and ":".
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', ':', '\\':
			return '_'
		default:
			return r
		}
	}, name)
}
