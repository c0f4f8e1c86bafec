package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
)

const (
	MergedArtifact      = "merged_all.csv"
	ComparativaArtifact = "comparativa.csv"
	ProvenanceArtifact  = "analysis_provenance.json"
)

// Analyze runs the whole pipeline: load the timepoint files, validate the
// merged table, write the merge audit artifact, pivot, derive deltas, render
// charts, and record provenance. Validation is fail-fast: nothing is written
// until the merged table passes every check.
func (x *UseCase) Analyze(ctx context.Context, input *model.AnalyzeInput) (*model.Provenance, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	logger := logging.From(ctx)

	loaded, err := LoadTimepointTables(ctx, input.CSVDir)
	if err != nil {
		return nil, err
	}
	if len(loaded) == 0 {
		return nil, goerr.Wrap(types.ErrNoInput, "no resultados_t*.csv files found",
			goerr.V("dir", input.CSVDir),
		)
	}

	var inputs []types.Timepoint
	var tables []*model.Table
	for _, l := range loaded {
		inputs = append(inputs, l.Timepoint)
		tables = append(tables, l.Table)
	}

	merged := model.Merge(tables)
	model.AddShortImage(merged)

	if err := model.ValidateScanTable(merged); err != nil {
		return nil, err
	}
	model.DefaultDBUpdatedAt(merged)
	if err := model.CoerceMetrics(ctx, merged); err != nil {
		return nil, err
	}

	store := x.clients.ArtifactStore()
	if err := store.WriteTable(ctx, MergedArtifact, merged); err != nil {
		return nil, err
	}
	logger.Info("Saved merged table",
		slog.String("location", store.Location(MergedArtifact)),
		slog.Int("rows", merged.Len()),
	)

	tps := model.TimepointsPresent(merged)
	pivot := model.Pivot(ctx, merged, tps)
	model.AddDeltas(pivot, tps)

	if err := store.WriteTable(ctx, ComparativaArtifact, pivot); err != nil {
		return nil, err
	}
	logger.Info("Saved comparative table",
		slog.String("location", store.Location(ComparativaArtifact)),
		slog.Int("rows", pivot.Len()),
	)

	if err := x.renderCharts(ctx, merged, pivot, tps); err != nil {
		return nil, err
	}

	prov := model.NewProvenance(input.Script, logging.CtxTime(ctx), inputs, model.ProvenanceOutputs{
		MergedAllCSV:   store.Location(MergedArtifact),
		ComparativaCSV: store.Location(ComparativaArtifact),
		FigDir:         input.FigDir,
	})
	prov.GitCommit = input.GitCommit
	if err := store.WriteJSON(ctx, ProvenanceArtifact, prov); err != nil {
		return nil, err
	}
	logger.Info("Saved provenance", slog.String("location", store.Location(ProvenanceArtifact)))

	return prov, nil
}

// renderCharts draws every chart whose preconditions hold. A chart whose
// preconditions are not met is skipped with an informational log, never an
// error.
func (x *UseCase) renderCharts(ctx context.Context, merged, pivot *model.Table, tps []types.Timepoint) error {
	logger := logging.From(ctx)
	renderer := x.clients.ChartRenderer()
	if renderer == nil {
		logger.Info("No chart renderer configured, skipping charts")
		return nil
	}

	if chart := model.BuildDensityChart(pivot, tps); chart != nil {
		path, err := renderer.RenderDensity(ctx, chart)
		if err != nil {
			return goerr.Wrap(err, "failed to render density chart")
		}
		logger.Info("Saved density chart", slog.String("path", path))

		if reporter := x.clients.ReportRenderer(); reporter != nil {
			path, err := reporter.RenderDensityReport(ctx, chart)
			if err != nil {
				return goerr.Wrap(err, "failed to render density report")
			}
			logger.Info("Saved density report", slog.String("path", path))
		}
	} else {
		logger.Info("Skipping density chart, no density column for T0")
	}

	if seriesCharts := model.BuildCVESeriesCharts(merged, tps); seriesCharts != nil {
		for _, chart := range seriesCharts {
			path, err := renderer.RenderCVESeries(ctx, chart)
			if err != nil {
				return goerr.Wrap(err, "failed to render CVE time series", goerr.V("image", chart.Image))
			}
			logger.Info("Saved CVE time series", slog.String("path", path))
		}
	} else {
		logger.Info("Skipping CVE time series, fewer than two timepoints present")
	}

	if chart := model.BuildDeltaDensityChart(pivot); chart != nil {
		path, err := renderer.RenderDeltaDensity(ctx, chart)
		if err != nil {
			return goerr.Wrap(err, "failed to render delta density chart")
		}
		logger.Info("Saved delta density chart", slog.String("path", path))
	} else {
		logger.Info("Skipping delta density chart, requires both density_T0 and density_T3")
	}

	return nil
}
