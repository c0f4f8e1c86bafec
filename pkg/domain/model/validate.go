package model

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
)

// ValidateScanTable enforces the scan result contract on the merged table:
// every required column must be present and, outside the null allow-list,
// every cell must be non-null. The contract is strict: one blank cell
// anywhere aborts the whole run.
func ValidateScanTable(tbl *Table) error {
	var missing []string
	for _, col := range RequiredColumns() {
		if !tbl.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return goerr.Wrap(types.ErrSchema, "missing required columns: "+strings.Join(missing, ", "),
			goerr.V("columns", missing),
		)
	}

	allowNull := map[string]bool{}
	for _, col := range AllowNullColumns() {
		allowNull[col] = true
	}

	var nullCols []string
	for _, col := range tbl.Columns() {
		if allowNull[col] {
			continue
		}
		for i := 0; i < tbl.Len(); i++ {
			if tbl.Get(i, col).IsNull() {
				nullCols = append(nullCols, col)
				break
			}
		}
	}
	if len(nullCols) > 0 {
		return goerr.Wrap(types.ErrMissingValue, "found missing values in columns: "+strings.Join(nullCols, ", "),
			goerr.V("columns", nullCols),
		)
	}

	// The timepoint column only admits the declared labels. An out-of-enum
	// label would pivot into a column that never reaches the output.
	known := map[string]bool{}
	for _, tp := range types.Timepoints() {
		known[tp.String()] = true
	}
	var unknown []string
	seen := map[string]bool{}
	for i := 0; i < tbl.Len(); i++ {
		v := tbl.Get(i, ColTimepoint).String()
		if !known[v] && !seen[v] {
			seen[v] = true
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		return goerr.Wrap(types.ErrSchema, "unknown timepoint labels: "+strings.Join(unknown, ", "),
			goerr.V("timepoints", unknown),
		)
	}

	return nil
}

// DefaultDBUpdatedAt fills null trivy_db_updated_at cells with the "unknown"
// sentinel. A table without the column is left untouched.
func DefaultDBUpdatedAt(tbl *Table) {
	if !tbl.HasColumn(ColDBUpdatedAt) {
		return
	}
	for i := 0; i < tbl.Len(); i++ {
		if tbl.Get(i, ColDBUpdatedAt).IsNull() {
			tbl.Set(i, ColDBUpdatedAt, StringCell("unknown"))
		}
	}
}

// CoerceMetrics converts every metric column to numbers in place. The whole
// column is coerced before the check so a failure is reported even when other
// rows of the same column parse cleanly. Negative metrics are tolerated but
// logged; the schema declares them non-negative.
func CoerceMetrics(ctx context.Context, tbl *Table) error {
	for _, metric := range types.PivotMetrics() {
		col := metric.String()
		failed := false
		for i := 0; i < tbl.Len(); i++ {
			c := tbl.Get(i, col)
			if c.IsNull() {
				failed = true
				continue
			}
			if _, ok := c.Number(); ok {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(c.String()), 64)
			if err != nil {
				failed = true
				continue
			}
			if v < 0 {
				logging.From(ctx).Warn("negative metric value",
					slog.String("column", col),
					slog.Int("row", i),
					slog.Float64("value", v),
				)
			}
			tbl.Set(i, col, NumberCell(v))
		}
		if failed {
			return goerr.Wrap(types.ErrTypeCoercion, "non-numeric values found in column: "+col,
				goerr.V("column", col),
			)
		}
	}
	return nil
}
