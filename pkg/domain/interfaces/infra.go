package interfaces

import (
	"context"

	"github.com/secmon-lab/vulntrend/pkg/domain/model"
)

// ArtifactStore persists the pipeline's tabular and JSON artifacts.
type ArtifactStore interface {
	WriteTable(ctx context.Context, name string, tbl *model.Table) error
	WriteJSON(ctx context.Context, name string, v any) error

	// Location returns where an artifact of the given name lands, for provenance.
	Location(name string) string
}

// ChartRenderer renders the comparison charts as image files and returns the
// path of each written file.
type ChartRenderer interface {
	RenderDensity(ctx context.Context, chart *model.DensityChart) (string, error)
	RenderCVESeries(ctx context.Context, chart *model.TimeSeriesChart) (string, error)
	RenderDeltaDensity(ctx context.Context, chart *model.DeltaChart) (string, error)
}

// ReportRenderer renders the optional interactive report.
type ReportRenderer interface {
	RenderDensityReport(ctx context.Context, chart *model.DensityChart) (string, error)
}
