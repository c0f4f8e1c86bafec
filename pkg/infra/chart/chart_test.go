package chart_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
	"github.com/secmon-lab/vulntrend/pkg/infra/chart"
)

func TestRenderDensity(t *testing.T) {
	ctx := context.Background()

	t.Run("grouped bars across timepoints", func(t *testing.T) {
		dir := t.TempDir()
		r := chart.New(dir)

		path, err := r.RenderDensity(ctx, &model.DensityChart{
			Images: []string{"app", "web"},
			Series: []model.BarSeries{
				{Name: "T0", Values: []float64{0.05, 0.04}, Present: []bool{true, true}},
				// web has no T1 cell and renders as a gap
				{Name: "T1", Values: []float64{0.08, 0}, Present: []bool{true, false}},
			},
		})
		gt.NoError(t, err)
		gt.V(t, path).Equal(filepath.Join(dir, "density_T0_T3.png"))

		info, err := os.Stat(path)
		gt.NoError(t, err)
		gt.True(t, info.Size() > 0)
	})

	t.Run("single timepoint variant", func(t *testing.T) {
		dir := t.TempDir()
		r := chart.New(dir)

		path, err := r.RenderDensity(ctx, &model.DensityChart{
			Images:          []string{"app"},
			Series:          []model.BarSeries{{Name: "T0", Values: []float64{0.05}, Present: []bool{true}}},
			SingleTimepoint: true,
		})
		gt.NoError(t, err)
		gt.V(t, filepath.Base(path)).Equal("density_T0_only.png")
	})
}

func TestRenderCVESeries(t *testing.T) {
	dir := t.TempDir()
	r := chart.New(dir)

	path, err := r.RenderCVESeries(context.Background(), &model.TimeSeriesChart{
		Image:      "reg/app:v1",
		Timepoints: []types.Timepoint{types.TimepointT0, types.TimepointT1},
		Critical:   []float64{2, 5},
		High:       []float64{3, 3},
	})
	gt.NoError(t, err)
	// image names are sanitized for the file system
	gt.V(t, filepath.Base(path)).Equal("cves_over_time_reg_app_v1.png")

	_, err = os.Stat(path)
	gt.NoError(t, err)
}

func TestRenderDeltaDensity(t *testing.T) {
	dir := t.TempDir()
	r := chart.New(dir)

	path, err := r.RenderDeltaDensity(context.Background(), &model.DeltaChart{
		Images: []string{"app"},
		Deltas: []float64{0.09},
	})
	gt.NoError(t, err)
	gt.V(t, filepath.Base(path)).Equal("delta_density_T3_vs_T0.png")
}

func TestRenderDensityReport(t *testing.T) {
	dir := t.TempDir()
	r := chart.NewHTMLReporter(dir)

	path, err := r.RenderDensityReport(context.Background(), &model.DensityChart{
		Images: []string{"app", "web"},
		Series: []model.BarSeries{{Name: "T0", Values: []float64{0.05, 0}, Present: []bool{true, false}}},
	})
	gt.NoError(t, err)
	gt.V(t, filepath.Base(path)).Equal("density_report.html")

	info, err := os.Stat(path)
	gt.NoError(t, err)
	gt.True(t, info.Size() > 0)
}
