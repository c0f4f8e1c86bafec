package model

import (
	"strings"

	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

// Column names of the scan result schema.
const (
	ColTimepoint    = "timepoint"
	ColImage        = "image"
	ColTag          = "tag"
	ColRepo         = "repo"
	ColImageRef     = "image_ref"
	ColSizeMB       = "size_mb"
	ColCritical     = "cv_critical"
	ColHigh         = "cv_high"
	ColDensity      = "density"
	ColTrivyVersion = "trivy_version"
	ColScanUTC      = "scan_utc"
	ColDBUpdatedAt  = "trivy_db_updated_at"
	ColShortImage   = "short_image"
)

// RequiredColumns lists the columns every merged scan table must carry.
func RequiredColumns() []string {
	return []string{
		ColTimepoint, ColImage, ColTag, ColRepo, ColImageRef,
		ColSizeMB, ColCritical, ColHigh, ColDensity,
		ColTrivyVersion, ColScanUTC,
	}
}

// AllowNullColumns lists columns excluded from the strict null check.
func AllowNullColumns() []string {
	return []string{ColDBUpdatedAt}
}

// ScanRecord is one (image, tag, timepoint) observation of the merged table.
type ScanRecord struct {
	Timepoint    types.Timepoint
	Image        string
	Tag          string
	Repo         string
	ImageRef     string
	ShortImage   string
	SizeMB       float64
	CVCritical   float64
	CVHigh       float64
	Density      float64
	TrivyVersion string
	ScanUTC      string
	DBUpdatedAt  string
}

// ScanRecords converts a validated and coerced merged table into typed records.
// It must be called after CoerceMetrics; rows with non-numeric metrics are
// returned with zero metric values.
func ScanRecords(tbl *Table) []ScanRecord {
	records := make([]ScanRecord, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		sizeMB, _ := tbl.Get(i, ColSizeMB).Number()
		critical, _ := tbl.Get(i, ColCritical).Number()
		high, _ := tbl.Get(i, ColHigh).Number()
		density, _ := tbl.Get(i, ColDensity).Number()

		records = append(records, ScanRecord{
			Timepoint:    types.Timepoint(tbl.Get(i, ColTimepoint).String()),
			Image:        tbl.Get(i, ColImage).String(),
			Tag:          tbl.Get(i, ColTag).String(),
			Repo:         tbl.Get(i, ColRepo).String(),
			ImageRef:     tbl.Get(i, ColImageRef).String(),
			ShortImage:   tbl.Get(i, ColShortImage).String(),
			SizeMB:       sizeMB,
			CVCritical:   critical,
			CVHigh:       high,
			Density:      density,
			TrivyVersion: tbl.Get(i, ColTrivyVersion).String(),
			ScanUTC:      tbl.Get(i, ColScanUTC).String(),
			DBUpdatedAt:  tbl.Get(i, ColDBUpdatedAt).String(),
		})
	}
	return records
}

// Merge concatenates tagged timepoint tables into one table. Column order is
// the first-seen order across inputs; row order is input order then original
// row order within each input.
func Merge(tables []*Table) *Table {
	merged := NewTable()
	for _, tbl := range tables {
		for _, col := range tbl.Columns() {
			merged.AddColumn(col)
		}
	}
	for _, tbl := range tables {
		for i := 0; i < tbl.Len(); i++ {
			row := make(Row)
			for _, col := range tbl.Columns() {
				if c := tbl.Get(i, col); !c.IsNull() {
					row[col] = c
				}
			}
			merged.Append(row)
		}
	}
	return merged
}

// ShortImageName extracts the display name of an image reference: the segment
// between the last "/" and the following ":". When the reference does not
// match that shape, the whole reference is returned so the derived column is
// never empty.
func ShortImageName(ref string) string {
	rest := ref
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		rest = ref[idx+1:]
	} else {
		return ref
	}
	colon := strings.Index(rest, ":")
	if colon <= 0 {
		return ref
	}
	return rest[:colon]
}

// AddShortImage derives the short_image column from image_ref for every row.
// Rows with a null image_ref get a null short_image and are caught by the
// null check afterwards.
func AddShortImage(tbl *Table) {
	tbl.AddColumn(ColShortImage)
	for i := 0; i < tbl.Len(); i++ {
		ref := tbl.Get(i, ColImageRef)
		if ref.IsNull() {
			continue
		}
		tbl.Set(i, ColShortImage, StringCell(ShortImageName(ref.String())))
	}
}

// TimepointsPresent returns the timepoints observed in the merged table,
// in T0..T3 order.
func TimepointsPresent(tbl *Table) []types.Timepoint {
	seen := map[types.Timepoint]bool{}
	for i := 0; i < tbl.Len(); i++ {
		seen[types.Timepoint(tbl.Get(i, ColTimepoint).String())] = true
	}

	var present []types.Timepoint
	for _, tp := range types.Timepoints() {
		if seen[tp] {
			present = append(present, tp)
		}
	}
	return present
}
