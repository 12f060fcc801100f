// Package filtering narrows a job list through a sequence of independent
// steps, logging how many postings each step drops.
package filtering

import (
	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/model"
)

// Filter represents a single filtering step applied to a job list.
type Filter interface {
	Name() string
	Keep(job *model.Job) bool
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the surviving
// jobs. The input slice is never mutated.
func Run(log *zap.Logger, filters []Filter, jobs []model.Job) []model.Job {
	if log == nil {
		log = zap.NewNop()
	}

	current := jobs
	for _, filter := range filters {
		initial := len(current)

		kept := make([]model.Job, 0, initial)
		for i := range current {
			if filter.Keep(&current[i]) {
				kept = append(kept, current[i])
			}
		}

		log.Debug("filter step",
			zap.String("name", filter.Name()),
			zap.Int("initial", initial),
			zap.Int("dropped", initial-len(kept)),
			zap.Int("left", len(kept)),
		)

		current = kept
	}

	return current
}
