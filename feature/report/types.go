package report

import (
	"time"

	"tft-atlas/feature/recipes"
	"tft-atlas/feature/search"
)

// RunSummary is the durable record of one ingest run. It is written to
// the work directory next to the JSONL artifacts so the outcome of the
// last run survives the process.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	SetKey     string    `json:"set_key"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Branches []search.BranchResult `json:"branches"`

	// Recipes carries the resolution audit of the recipe merge, when
	// the run included one.
	Recipes *recipes.Report `json:"recipes,omitempty"`

	// Fatal is set when the run aborted before publishing.
	Fatal string `json:"fatal,omitempty"`
}

// Ok reports whether the run finished without a fatal error and every
// branch published.
func (s *RunSummary) Ok() bool {
	if s.Fatal != "" {
		return false
	}
	for _, b := range s.Branches {
		if !b.Published {
			return false
		}
	}
	return true
}
