package logging_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/utils/logging"
)

func TestLoggerContext(t *testing.T) {
	t.Run("From returns default logger for bare context", func(t *testing.T) {
		logger := logging.From(context.Background())
		gt.True(t, logger == logging.Default())
	})

	t.Run("From returns logger set by With", func(t *testing.T) {
		custom := slog.Default().With("key", "value")
		ctx := logging.With(context.Background(), custom)

		gt.True(t, logging.From(ctx) == custom)
	})
}

func TestCtxTime(t *testing.T) {
	t.Run("returns injected time", func(t *testing.T) {
		fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		ctx := logging.CtxWithTime(context.Background(), func() time.Time { return fixed })

		gt.V(t, logging.CtxTime(ctx)).Equal(fixed)
	})

	t.Run("returns current time without injection", func(t *testing.T) {
		before := time.Now()
		got := logging.CtxTime(context.Background())

		gt.True(t, !got.Before(before))
	})
}
