package types

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type (
	Timepoint string
	Metric    string
	RunID     string
	SentryDSN string
)

const (
	TimepointT0 Timepoint = "T0"
	TimepointT1 Timepoint = "T1"
	TimepointT2 Timepoint = "T2"
	TimepointT3 Timepoint = "T3"
)

// Timepoints returns all candidate timepoints in observation order. T0 is the baseline.
func Timepoints() []Timepoint {
	return []Timepoint{TimepointT0, TimepointT1, TimepointT2, TimepointT3}
}

func (x Timepoint) String() string {
	return string(x)
}

// FileSuffix returns the lowercased identifier used in input file names, e.g. "t0".
func (x Timepoint) FileSuffix() string {
	return strings.ToLower(string(x))
}

func (x Timepoint) IsBaseline() bool {
	return x == TimepointT0
}

const (
	MetricCritical Metric = "cv_critical"
	MetricHigh     Metric = "cv_high"
	MetricSizeMB   Metric = "size_mb"
	MetricDensity  Metric = "density"
)

// PivotMetrics returns the metrics spread into per-timepoint columns.
func PivotMetrics() []Metric {
	return []Metric{MetricCritical, MetricHigh, MetricSizeMB, MetricDensity}
}

// DeltaMetrics returns the metrics compared against the T0 baseline.
// size_mb is excluded: image size change is not a vulnerability trend.
func DeltaMetrics() []Metric {
	return []Metric{MetricCritical, MetricHigh, MetricDensity}
}

func (x Metric) String() string {
	return string(x)
}

func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string {
	return string(x)
}

func (x SentryDSN) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x SentryDSN) String() string {
	return "***********"
}
