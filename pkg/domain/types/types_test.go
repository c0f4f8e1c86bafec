package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

func TestTimepoint(t *testing.T) {
	gt.V(t, len(types.Timepoints())).Equal(4)
	gt.V(t, types.TimepointT2.FileSuffix()).Equal("t2")
	gt.True(t, types.TimepointT0.IsBaseline())
	gt.True(t, !types.TimepointT1.IsBaseline())
}

func TestMetrics(t *testing.T) {
	gt.V(t, len(types.PivotMetrics())).Equal(4)

	// size_mb never gets a delta column
	for _, m := range types.DeltaMetrics() {
		gt.True(t, m != types.MetricSizeMB)
	}
}

func TestNewRunID(t *testing.T) {
	gt.True(t, types.NewRunID() != types.NewRunID())
}
