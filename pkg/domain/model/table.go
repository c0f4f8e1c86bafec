package model

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

type cellKind int

const (
	cellNull cellKind = iota
	cellString
	cellNumber
)

// Cell is a single nullable value of a table. A cell is either null,
// a string, or a number; numeric coercion rewrites string cells in place.
type Cell struct {
	kind cellKind
	str  string
	num  float64
}

var NullCell = Cell{}

func StringCell(s string) Cell {
	return Cell{kind: cellString, str: s}
}

func NumberCell(f float64) Cell {
	return Cell{kind: cellNumber, num: f}
}

func (x Cell) IsNull() bool {
	return x.kind == cellNull
}

// Number returns the numeric value. The second value is false for
// null and string cells.
func (x Cell) Number() (float64, bool) {
	return x.num, x.kind == cellNumber
}

// String returns the raw string of a string cell, or the encoded form otherwise.
func (x Cell) String() string {
	if x.kind == cellString {
		return x.str
	}
	return x.Encode()
}

// Encode returns the CSV representation: empty for null, plain decimal with
// the fewest digits for numbers. Exponent notation never appears; large
// size_mb values must stay readable as decimals.
func (x Cell) Encode() string {
	switch x.kind {
	case cellString:
		return x.str
	case cellNumber:
		return strconv.FormatFloat(x.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Row maps column name to cell. Columns absent from the map are null.
type Row map[string]Cell

// Table is an ordered sequence of rows with named columns. Column order is
// preserved from construction and determines CSV output order.
type Table struct {
	cols []string
	rows []Row
}

func NewTable(cols ...string) *Table {
	return &Table{cols: append([]string{}, cols...)}
}

func (x *Table) Columns() []string {
	return append([]string{}, x.cols...)
}

func (x *Table) HasColumn(name string) bool {
	for _, c := range x.cols {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the end of the column order. Adding an
// existing column is a no-op.
func (x *Table) AddColumn(name string) {
	if !x.HasColumn(name) {
		x.cols = append(x.cols, name)
	}
}

func (x *Table) Append(row Row) {
	x.rows = append(x.rows, row)
}

func (x *Table) Len() int {
	return len(x.rows)
}

func (x *Table) Get(i int, col string) Cell {
	if c, ok := x.rows[i][col]; ok {
		return c
	}
	return NullCell
}

func (x *Table) Set(i int, col string, c Cell) {
	x.rows[i][col] = c
}

// ReadTableCSV reads a table with a header row. Empty fields become null cells,
// everything else string cells.
func ReadTableCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, goerr.New("empty CSV input, header row is required")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}

	tbl := NewTable(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row")
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = StringCell(record[i])
			}
		}
		tbl.Append(row)
	}

	return tbl, nil
}

// WriteCSV writes the table with a header row in column order.
func (x *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(x.cols); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	record := make([]string, len(x.cols))
	for _, row := range x.rows {
		for i, col := range x.cols {
			if c, ok := row[col]; ok {
				record[i] = c.Encode()
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV output")
	}
	return nil
}
