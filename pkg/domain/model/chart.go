package model

import (
	"sort"

	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

// BarSeries is one labeled group of bar values aligned with the chart's
// images. Present marks which values are backed by an actual cell; a false
// entry is a gap, not a zero.
type BarSeries struct {
	Name    string
	Values  []float64
	Present []bool
}

// DensityChart is the density-by-image comparison across timepoints.
// SingleTimepoint marks the degraded T0-only variant.
type DensityChart struct {
	Images          []string
	Series          []BarSeries
	SingleTimepoint bool
}

// BuildDensityChart derives the density bar chart from the pivoted table.
// With two or more density columns it produces one series per timepoint;
// with only density_T0 a single-series chart. Missing cells become gaps in
// the series, not zero bars. Returns nil when no density column exists.
func BuildDensityChart(pivot *Table, tps []types.Timepoint) *DensityChart {
	var densityTPs []types.Timepoint
	for _, tp := range tps {
		if pivot.HasColumn(PivotColumn(types.MetricDensity, tp)) {
			densityTPs = append(densityTPs, tp)
		}
	}
	if len(densityTPs) == 0 {
		return nil
	}

	chart := &DensityChart{SingleTimepoint: len(densityTPs) == 1}
	if chart.SingleTimepoint && densityTPs[0] != types.TimepointT0 {
		return nil
	}

	for i := 0; i < pivot.Len(); i++ {
		chart.Images = append(chart.Images, pivot.Get(i, ColShortImage).String())
	}
	for _, tp := range densityTPs {
		series := BarSeries{Name: tp.String()}
		col := PivotColumn(types.MetricDensity, tp)
		for i := 0; i < pivot.Len(); i++ {
			v, ok := pivot.Get(i, col).Number()
			series.Values = append(series.Values, v)
			series.Present = append(series.Present, ok)
		}
		chart.Series = append(chart.Series, series)
	}
	return chart
}

// TimeSeriesChart is the per-image critical/high counts over timepoints.
type TimeSeriesChart struct {
	Image      string
	Timepoints []types.Timepoint
	Critical   []float64
	High       []float64
}

// BuildCVESeriesCharts groups the merged table by short_image and builds one
// critical/high time series per image. Returns nil when fewer than two
// timepoints are present; a single point is not a trend.
func BuildCVESeriesCharts(merged *Table, tps []types.Timepoint) []*TimeSeriesChart {
	if len(tps) < 2 {
		return nil
	}

	byImage := map[string]map[types.Timepoint]ScanRecord{}
	var images []string
	for _, rec := range ScanRecords(merged) {
		if _, ok := byImage[rec.ShortImage]; !ok {
			byImage[rec.ShortImage] = map[types.Timepoint]ScanRecord{}
			images = append(images, rec.ShortImage)
		}
		if _, ok := byImage[rec.ShortImage][rec.Timepoint]; !ok {
			byImage[rec.ShortImage][rec.Timepoint] = rec
		}
	}
	sort.Strings(images)

	var charts []*TimeSeriesChart
	for _, img := range images {
		chart := &TimeSeriesChart{Image: img}
		for _, tp := range tps {
			rec, ok := byImage[img][tp]
			if !ok {
				continue
			}
			chart.Timepoints = append(chart.Timepoints, tp)
			chart.Critical = append(chart.Critical, rec.CVCritical)
			chart.High = append(chart.High, rec.CVHigh)
		}
		charts = append(charts, chart)
	}
	return charts
}

// DeltaChart is the density change of each image at T3 versus T0.
type DeltaChart struct {
	Images []string
	Deltas []float64
}

// BuildDeltaDensityChart derives the T3-vs-T0 density change bars. Returns
// nil unless both density_T0 and density_T3 exist; rows missing either
// operand are left out.
func BuildDeltaDensityChart(pivot *Table) *DeltaChart {
	baseCol := PivotColumn(types.MetricDensity, types.TimepointT0)
	laterCol := PivotColumn(types.MetricDensity, types.TimepointT3)
	if !pivot.HasColumn(baseCol) || !pivot.HasColumn(laterCol) {
		return nil
	}

	chart := &DeltaChart{}
	for i := 0; i < pivot.Len(); i++ {
		base, okBase := pivot.Get(i, baseCol).Number()
		later, okLater := pivot.Get(i, laterCol).Number()
		if !okBase || !okLater {
			continue
		}
		chart.Images = append(chart.Images, pivot.Get(i, ColShortImage).String())
		chart.Deltas = append(chart.Deltas, later-base)
	}
	return chart
}
