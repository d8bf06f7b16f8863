package reconciler

import (
	"time"

	"github.com/DaveDDH/clave-take-home-sub000/pkg/catalog"
)

// Metadata describes one reconciliation run.
type Metadata struct {
	StartTime time.Time      `json:"start_time"`
	EndTime   time.Time      `json:"end_time"`
	Duration  time.Duration  `json:"duration"`
	Sources   []string       `json:"sources"`
	Stats     map[string]int `json:"stats,omitempty"`
}

// Result is the output of one reconciliation run: the canonical bundle,
// the integrity report, and run metadata.
type Result struct {
	Bundle    *catalog.Bundle  `json:"bundle"`
	Integrity *IntegrityReport `json:"integrity"`
	Metadata  Metadata         `json:"metadata"`
}

func newResult(order []catalog.Source) *Result {
	sources := make([]string, len(order))
	for i, src := range order {
		sources[i] = src.String()
	}
	return &Result{
		Bundle: &catalog.Bundle{},
		Metadata: Metadata{
			StartTime: time.Now(),
			Sources:   sources,
		},
	}
}

// Finalize stamps the end time and collection stats. Returns the result
// for chaining.
func (r *Result) Finalize() *Result {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	if r.Bundle != nil {
		r.Metadata.Stats = r.Bundle.Counts()
	}
	return r
}
