package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNoInput is returned when no timepoint input file exists at all.
	ErrNoInput = goerr.New("no timepoint input files found")

	// ErrSchema is returned when a required column is absent from the merged table.
	ErrSchema = goerr.New("required columns are missing")

	// ErrMissingValue is returned when a column outside the null allow-list has an empty cell.
	ErrMissingValue = goerr.New("missing values in required columns")

	// ErrTypeCoercion is returned when a metric column holds a value that cannot be parsed as a number.
	ErrTypeCoercion = goerr.New("non-numeric value in metric column")

	ErrInvalidOption = goerr.New("invalid option")
)
