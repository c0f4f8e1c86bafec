package model_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vulntrend/pkg/domain/model"
)

func TestReadTableCSV(t *testing.T) {
	t.Run("reads header and rows", func(t *testing.T) {
		input := "image,tag\napp,v1\nweb,v2\n"
		tbl, err := model.ReadTableCSV(strings.NewReader(input))

		gt.NoError(t, err)
		gt.V(t, tbl.Columns()).Equal([]string{"image", "tag"})
		gt.V(t, tbl.Len()).Equal(2)
		gt.V(t, tbl.Get(0, "image").String()).Equal("app")
		gt.V(t, tbl.Get(1, "tag").String()).Equal("v2")
	})

	t.Run("empty fields become null cells", func(t *testing.T) {
		input := "image,repo\napp,\n"
		tbl, err := model.ReadTableCSV(strings.NewReader(input))

		gt.NoError(t, err)
		gt.True(t, tbl.Get(0, "repo").IsNull())
		gt.True(t, !tbl.Get(0, "image").IsNull())
	})

	t.Run("empty input is an error", func(t *testing.T) {
		_, err := model.ReadTableCSV(strings.NewReader(""))
		gt.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	t.Run("encodes numbers minimally and nulls as empty", func(t *testing.T) {
		tbl := model.NewTable("image", "cv_critical", "density", "note")
		tbl.Append(model.Row{
			"image":       model.StringCell("app"),
			"cv_critical": model.NumberCell(3),
			"density":     model.NumberCell(0.05),
		})

		var buf bytes.Buffer
		gt.NoError(t, tbl.WriteCSV(&buf))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		gt.V(t, lines[0]).Equal("image,cv_critical,density,note")
		gt.V(t, lines[1]).Equal("app,3,0.05,")
	})

	t.Run("large numbers stay plain decimals", func(t *testing.T) {
		gt.V(t, model.NumberCell(1500000).Encode()).Equal("1500000")
		gt.V(t, model.NumberCell(1e6).Encode()).Equal("1000000")
		gt.V(t, model.NumberCell(0.0001).Encode()).Equal("0.0001")
	})

	t.Run("round trip preserves shape", func(t *testing.T) {
		tbl := model.NewTable("a", "b")
		tbl.Append(model.Row{"a": model.StringCell("x")})
		tbl.Append(model.Row{"a": model.StringCell("y"), "b": model.StringCell("z")})

		var buf bytes.Buffer
		gt.NoError(t, tbl.WriteCSV(&buf))

		got, err := model.ReadTableCSV(&buf)
		gt.NoError(t, err)
		gt.V(t, got.Len()).Equal(2)
		gt.True(t, got.Get(0, "b").IsNull())
		gt.V(t, got.Get(1, "b").String()).Equal("z")
	})
}

func TestAddColumn(t *testing.T) {
	tbl := model.NewTable("a")
	tbl.AddColumn("b")
	tbl.AddColumn("a")

	gt.V(t, tbl.Columns()).Equal([]string{"a", "b"})
}
