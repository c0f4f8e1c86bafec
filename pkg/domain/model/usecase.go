package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

// AnalyzeInput is the configuration of one pipeline run.
type AnalyzeInput struct {
	// CSVDir holds the resultados_t*.csv inputs and receives the CSV/JSON artifacts.
	CSVDir string

	// FigDir receives the rendered chart files.
	FigDir string

	// Script is the tool label recorded in the provenance document.
	Script string

	// GitCommit is the optional HEAD commit of the repository holding the
	// data, recorded in provenance when known.
	GitCommit string
}

func (x *AnalyzeInput) Validate() error {
	if x.CSVDir == "" {
		return goerr.Wrap(types.ErrInvalidOption, "csv directory is empty")
	}
	if x.FigDir == "" {
		return goerr.Wrap(types.ErrInvalidOption, "figure directory is empty")
	}
	return nil
}
