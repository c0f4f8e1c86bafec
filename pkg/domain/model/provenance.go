package model

import (
	"time"

	"github.com/secmon-lab/vulntrend/pkg/domain/types"
)

// Provenance records which inputs a run consumed and where its artifacts
// landed. It is serialized verbatim as the provenance JSON artifact.
type Provenance struct {
	Script        string            `json:"script"`
	RunID         types.RunID       `json:"run_id"`
	GeneratedUTC  string            `json:"generated_utc"`
	GitCommit     string            `json:"git_commit,omitempty"`
	InputsPresent []string          `json:"inputs_present"`
	Outputs       ProvenanceOutputs `json:"outputs"`
}

type ProvenanceOutputs struct {
	MergedAllCSV   string `json:"merged_all_csv"`
	ComparativaCSV string `json:"comparativa_csv"`
	FigDir         string `json:"fig_dir"`
}

// NewProvenance stamps a provenance record at the given time. Inputs are the
// lowercased timepoint identifiers whose files were found.
func NewProvenance(script string, now time.Time, inputs []types.Timepoint, outputs ProvenanceOutputs) *Provenance {
	present := make([]string, 0, len(inputs))
	for _, tp := range inputs {
		present = append(present, tp.FileSuffix())
	}

	return &Provenance{
		Script:        script,
		RunID:         types.NewRunID(),
		GeneratedUTC:  now.UTC().Format(time.RFC3339),
		InputsPresent: present,
		Outputs:       outputs,
	}
}
