package usecase

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
	"github.com/secmon-lab/vulntrend/pkg/utils/safe"
)

// LoadedTable is one timepoint's raw scan table, tagged with the timepoint
// whose file it came from.
type LoadedTable struct {
	Timepoint types.Timepoint
	Table     *model.Table
}

// InputFileName returns the candidate file name of a timepoint, e.g. "resultados_t0.csv".
func InputFileName(tp types.Timepoint) string {
	return "resultados_" + tp.FileSuffix() + ".csv"
}

// LoadTimepointTables reads every present timepoint file under dir in T0..T3
// order. Timepoints with no backing file are skipped; partial coverage is
// normal. The timepoint column of each loaded table is uppercased in place.
func LoadTimepointTables(ctx context.Context, dir string) ([]LoadedTable, error) {
	var loaded []LoadedTable
	for _, tp := range types.Timepoints() {
		path := filepath.Join(dir, InputFileName(tp))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		tbl, err := loadTableFromFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load timepoint file",
				goerr.V("timepoint", tp),
				goerr.V("path", path),
			)
		}
		uppercaseTimepoint(tbl)

		logging.From(ctx).Info("Loaded timepoint file",
			slog.String("timepoint", tp.String()),
			slog.String("path", path),
			slog.Int("rows", tbl.Len()),
		)
		loaded = append(loaded, LoadedTable{Timepoint: tp, Table: tbl})
	}
	return loaded, nil
}

func loadTableFromFile(path string) (*model.Table, error) {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open CSV file")
	}
	defer safe.Close(fd)

	return model.ReadTableCSV(fd)
}

// uppercaseTimepoint normalizes the timepoint column to its uppercase label.
// A table without the column is left as-is; the schema check reports it.
func uppercaseTimepoint(tbl *model.Table) {
	if !tbl.HasColumn(model.ColTimepoint) {
		return
	}
	for i := 0; i < tbl.Len(); i++ {
		if c := tbl.Get(i, model.ColTimepoint); !c.IsNull() {
			tbl.Set(i, model.ColTimepoint, model.StringCell(strings.ToUpper(c.String())))
		}
	}
}
