// Package saga runs multi-resource write sequences with per-step
// compensation. The stores involved do not share a transaction, so
// consistency comes from undoing completed steps in reverse order when a
// later step fails.
package saga

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Step is one forward action paired with the compensation that undoes it.
// Compensate may be nil for steps that need no undo (e.g. the terminal step).
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Run executes the steps in order. On the first failure it stops, applies
// the compensations of all previously completed steps in reverse order, and
// returns the failing step's error unchanged so callers keep their own error
// taxonomy.
//
// A failing compensation is a fatal inconsistency: there is no further
// recovery path, so it is logged at error level and execution of the
// remaining compensations continues.
func Run(ctx context.Context, name string, steps []Step) error {
	completed := make([]Step, 0, len(steps))

	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			log.Warn().
				Str("saga", name).
				Str("step", step.Name).
				Err(err).
				Msg("Saga step failed, compensating")
			compensate(ctx, name, completed)
			return err
		}
		completed = append(completed, step)
	}

	return nil
}

func compensate(ctx context.Context, name string, completed []Step) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			log.Error().
				Str("saga", name).
				Str("step", step.Name).
				Err(err).
				Msg("Compensation failed, stores are inconsistent")
			continue
		}
		log.Info().
			Str("saga", name).
			Str("step", step.Name).
			Msg("Step compensated")
	}
}
