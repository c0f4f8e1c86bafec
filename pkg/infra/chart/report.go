package chart

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/vulntrend/pkg/domain/interfaces"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/utils/safe"
)

// HTMLReporter renders the density comparison as an interactive HTML report.
type HTMLReporter struct {
	figDir string
}

var _ interfaces.ReportRenderer = (*HTMLReporter)(nil)

func NewHTMLReporter(figDir string) *HTMLReporter {
	return &HTMLReporter{figDir: figDir}
}

func (x *HTMLReporter) RenderDensityReport(ctx context.Context, chart *model.DensityChart) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Vulnerability density by image",
			Subtitle: "CRITICAL+HIGH per MB across timepoints",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5%"}),
	)

	bar.SetXAxis(chart.Images)
	for _, series := range chart.Series {
		data := make([]opts.BarData, 0, len(series.Values))
		for i, v := range series.Values {
			if !series.Present[i] {
				// nil value renders as a gap at this image
				data = append(data, opts.BarData{})
				continue
			}
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(series.Name, data)
	}

	if err := os.MkdirAll(x.figDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create figure directory", goerr.V("dir", x.figDir))
	}
	path := filepath.Join(x.figDir, "density_report.html")
	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create HTML report file", goerr.V("path", path))
	}
	defer safe.Close(fd)

	if err := bar.Render(fd); err != nil {
		return "", goerr.Wrap(err, "failed to render HTML report", goerr.V("path", path))
	}
	return path, nil
}
