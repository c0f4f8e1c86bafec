package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
	"github.com/secmon-lab/vulntrend/pkg/repository"
	"github.com/secmon-lab/vulntrend/pkg/repository/memory"
)

func TestArtifactStore(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and returns tables", func(t *testing.T) {
		store := memory.New()
		tbl := model.NewTable("image")
		tbl.Append(model.Row{"image": model.StringCell("app")})

		gt.NoError(t, store.WriteTable(ctx, "merged_all.csv", tbl))

		got, err := store.Table("merged_all.csv")
		gt.NoError(t, err)
		gt.V(t, got.Len()).Equal(1)
		gt.V(t, store.TableNames()).Equal([]string{"merged_all.csv"})
	})

	t.Run("unknown artifact is not found", func(t *testing.T) {
		store := memory.New()

		_, err := store.Table("nope.csv")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, repository.ErrNotFound))
	})

	t.Run("round trips JSON artifacts", func(t *testing.T) {
		store := memory.New()
		gt.NoError(t, store.WriteJSON(ctx, "prov.json", map[string]string{"script": "x"}))

		var got map[string]string
		gt.NoError(t, store.JSON("prov.json", &got))
		gt.V(t, got["script"]).Equal("x")
	})

	t.Run("locations are memory URIs", func(t *testing.T) {
		gt.V(t, memory.New().Location("a.csv")).Equal("memory://a.csv")
	})
}
