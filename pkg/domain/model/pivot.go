package model

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/secmon-lab/vulntrend/pkg/domain/types"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
)

type pivotKey struct {
	image, tag, repo, short string
}

// PivotColumn flattens a (metric, timepoint) pair into a column name,
// joining the non-empty parts with "_".
func PivotColumn(metric types.Metric, tp types.Timepoint) string {
	parts := []string{metric.String()}
	if tp != "" {
		parts = append(parts, tp.String())
	}
	return strings.Join(parts, "_")
}

// DeltaColumn names the derived difference of a metric at tp versus the T0 baseline.
func DeltaColumn(metric types.Metric, tp types.Timepoint) string {
	return "delta_" + metric.String() + "_" + tp.String() + "_vs_T0"
}

// Pivot reshapes the merged table into one row per (image, tag, repo,
// short_image) with a <metric>_<TIMEPOINT> column for each metric and each
// timepoint present. The first row seen for a (key, timepoint) pair wins;
// later duplicates are dropped with a data-quality warning. Rows are ordered
// lexicographically by key.
func Pivot(ctx context.Context, merged *Table, tps []types.Timepoint) *Table {
	cols := []string{ColImage, ColTag, ColRepo, ColShortImage}
	for _, metric := range types.PivotMetrics() {
		for _, tp := range tps {
			cols = append(cols, PivotColumn(metric, tp))
		}
	}
	pivot := NewTable(cols...)

	rows := map[pivotKey]Row{}
	filled := map[pivotKey]map[types.Timepoint]bool{}
	var keys []pivotKey

	for i := 0; i < merged.Len(); i++ {
		key := pivotKey{
			image: merged.Get(i, ColImage).String(),
			tag:   merged.Get(i, ColTag).String(),
			repo:  merged.Get(i, ColRepo).String(),
			short: merged.Get(i, ColShortImage).String(),
		}
		tp := types.Timepoint(merged.Get(i, ColTimepoint).String())

		row, ok := rows[key]
		if !ok {
			row = Row{
				ColImage:      StringCell(key.image),
				ColTag:        StringCell(key.tag),
				ColRepo:       StringCell(key.repo),
				ColShortImage: StringCell(key.short),
			}
			rows[key] = row
			filled[key] = map[types.Timepoint]bool{}
			keys = append(keys, key)
		}

		if filled[key][tp] {
			logging.From(ctx).Warn("duplicate scan row for key and timepoint, keeping first",
				slog.String("image", key.image),
				slog.String("tag", key.tag),
				slog.String("repo", key.repo),
				slog.String("timepoint", tp.String()),
			)
			continue
		}
		filled[key][tp] = true

		for _, metric := range types.PivotMetrics() {
			if c := merged.Get(i, metric.String()); !c.IsNull() {
				row[PivotColumn(metric, tp)] = c
			}
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].image != keys[j].image {
			return keys[i].image < keys[j].image
		}
		if keys[i].tag != keys[j].tag {
			return keys[i].tag < keys[j].tag
		}
		return keys[i].repo < keys[j].repo
	})

	for _, key := range keys {
		pivot.Append(rows[key])
	}
	return pivot
}
