package model_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

func TestAddDeltas(t *testing.T) {
	ctx := context.Background()

	t.Run("computes later minus baseline", func(t *testing.T) {
		merged := model.NewTable(scanColumns()...)
		merged.Append(scanRow("T0", "app", 2, 3, 100, 0.05))
		merged.Append(scanRow("T1", "app", 5, 4, 100, 0.09))

		tps := []types.Timepoint{types.TimepointT0, types.TimepointT1}
		pivot := model.Pivot(ctx, merged, tps)
		model.AddDeltas(pivot, tps)

		gt.True(t, pivot.HasColumn("delta_cv_critical_T1_vs_T0"))
		v, ok := pivot.Get(0, "delta_cv_critical_T1_vs_T0").Number()
		gt.True(t, ok)
		gt.V(t, v).Equal(3.0)
	})

	t.Run("size_mb is excluded from deltas", func(t *testing.T) {
		merged := model.NewTable(scanColumns()...)
		merged.Append(scanRow("T0", "app", 2, 3, 100, 0.05))
		merged.Append(scanRow("T1", "app", 5, 4, 120, 0.09))

		tps := []types.Timepoint{types.TimepointT0, types.TimepointT1}
		pivot := model.Pivot(ctx, merged, tps)
		model.AddDeltas(pivot, tps)

		gt.True(t, !pivot.HasColumn("delta_size_mb_T1_vs_T0"))
	})

	t.Run("missing operand yields null delta", func(t *testing.T) {
		merged := model.NewTable(scanColumns()...)
		merged.Append(scanRow("T0", "app", 2, 3, 100, 0.05))
		merged.Append(scanRow("T1", "app", 5, 4, 100, 0.09))
		merged.Append(scanRow("T1", "web", 1, 1, 50, 0.04))

		tps := []types.Timepoint{types.TimepointT0, types.TimepointT1}
		pivot := model.Pivot(ctx, merged, tps)
		model.AddDeltas(pivot, tps)

		// web has no T0 observation so its delta is null, not zero
		gt.V(t, pivot.Get(1, model.ColImage).String()).Equal("web")
		gt.True(t, pivot.Get(1, "delta_cv_critical_T1_vs_T0").IsNull())
	})

	t.Run("no T0 means no delta columns at all", func(t *testing.T) {
		merged := model.NewTable(scanColumns()...)
		merged.Append(scanRow("T1", "app", 5, 4, 100, 0.09))
		merged.Append(scanRow("T2", "app", 6, 4, 100, 0.10))

		tps := []types.Timepoint{types.TimepointT1, types.TimepointT2}
		pivot := model.Pivot(ctx, merged, tps)
		model.AddDeltas(pivot, tps)

		for _, col := range pivot.Columns() {
			gt.True(t, !strings.HasPrefix(col, "delta_"))
		}
	})
}
