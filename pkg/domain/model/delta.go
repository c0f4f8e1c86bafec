package model

import (
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

// AddDeltas appends delta_<metric>_<Tn>_vs_T0 columns to the pivoted table
// for every delta metric and later timepoint whose operand columns both
// exist. Rows missing either operand get a null delta. When T0 is absent
// from the inputs no column is added at all.
func AddDeltas(pivot *Table, tps []types.Timepoint) {
	for _, metric := range types.DeltaMetrics() {
		baseCol := PivotColumn(metric, types.TimepointT0)
		if !pivot.HasColumn(baseCol) {
			continue
		}

		for _, tp := range tps {
			if tp.IsBaseline() {
				continue
			}
			laterCol := PivotColumn(metric, tp)
			if !pivot.HasColumn(laterCol) {
				continue
			}

			deltaCol := DeltaColumn(metric, tp)
			pivot.AddColumn(deltaCol)
			for i := 0; i < pivot.Len(); i++ {
				later, okLater := pivot.Get(i, laterCol).Number()
				base, okBase := pivot.Get(i, baseCol).Number()
				if okLater && okBase {
					pivot.Set(i, deltaCol, NumberCell(later-base))
				}
			}
		}
	}
}
