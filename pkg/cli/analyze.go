package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/vulntrend/pkg/cli/config"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/infra"
	"github.com/secmon-lab/vulntrend/pkg/infra/chart"
	"github.com/secmon-lab/vulntrend/pkg/repository/local"
	"github.com/secmon-lab/vulntrend/pkg/usecase"
	"github.com/secmon-lab/vulntrend/pkg/utils/errutil"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
)

func analyzeCommand() *cli.Command {
	var (
		sentryCfg  config.Sentry
		csvDir     string
		figDir     string
		htmlReport bool
	)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Merge timepoint scan CSVs, compute deltas, and render comparison charts",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "csv-dir",
				Aliases:     []string{"d"},
				Usage:       "Directory holding resultados_t*.csv inputs (also receives CSV/JSON artifacts)",
				Value:       "data/csv",
				Sources:     cli.EnvVars("VULNTREND_CSV_DIR"),
				Destination: &csvDir,
			},
			&cli.StringFlag{
				Name:        "fig-dir",
				Usage:       "Directory receiving rendered chart files",
				Value:       "data/fig",
				Sources:     cli.EnvVars("VULNTREND_FIG_DIR"),
				Destination: &figDir,
			},
			&cli.BoolFlag{
				Name:        "html-report",
				Usage:       "Also render an interactive HTML density report",
				Sources:     cli.EnvVars("VULNTREND_HTML_REPORT"),
				Destination: &htmlReport,
			},
		}, sentryCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := sentryCfg.Configure(ctx); err != nil {
				return err
			}

			return runAnalyze(ctx, csvDir, figDir, htmlReport)
		},
	}
}

func runAnalyze(ctx context.Context, csvDir, figDir string, htmlReport bool) error {
	logging.From(ctx).Info("Starting analysis",
		slog.String("csv_dir", csvDir),
		slog.String("fig_dir", figDir),
		slog.Bool("html_report", htmlReport),
	)

	clientOpts := []infra.Option{
		infra.WithArtifactStore(local.New(csvDir)),
		infra.WithChartRenderer(chart.New(figDir)),
	}
	if htmlReport {
		clientOpts = append(clientOpts, infra.WithReportRenderer(chart.NewHTMLReporter(figDir)))
	}
	clients := infra.New(clientOpts...)

	uc := usecase.New(clients)

	input := &model.AnalyzeInput{
		CSVDir:    csvDir,
		FigDir:    figDir,
		Script:    "vulntrend analyze",
		GitCommit: DetectGitCommit(ctx, csvDir),
	}

	prov, err := uc.Analyze(ctx, input)
	if err != nil {
		errutil.HandleError(ctx, "analysis failed", err)
		return goerr.Wrap(err, "failed to analyze scan results")
	}

	logging.From(ctx).Info("Analysis completed",
		slog.String("run_id", prov.RunID.String()),
		slog.Any("inputs_present", prov.InputsPresent),
	)

	return nil
}
