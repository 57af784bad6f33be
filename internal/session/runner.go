// ABOUTME: Runner drives a Machine with one Tick per ticker firing.
// ABOUTME: Decouples the countdown from any UI so tests can inject ticks by hand.
package session

import (
	"context"

	"github.com/rs/zerolog"
)

// Runner ticks a Machine until its session ends or the context is cancelled.
type Runner struct {
	machine *Machine
	ticker  Ticker
	logger  zerolog.Logger
}

// NewRunner creates a Runner for m using t as its clock source.
func NewRunner(m *Machine, t Ticker, logger zerolog.Logger) *Runner {
	return &Runner{machine: m, ticker: t, logger: logger.With().Str("component", "runner").Logger()}
}

// Run blocks until the session is terminal (returns nil) or ctx is done
// (returns ctx.Err()). The session must already be started.
func (r *Runner) Run(ctx context.Context) error {
	defer r.ticker.Stop()

	done := r.machine.Done()
	if done == nil {
		return ErrInvalidState
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug().Msg("runner cancelled")
			return ctx.Err()
		case <-done:
			r.logger.Debug().Str("status", r.machine.Snapshot().Status.String()).Msg("runner finished")
			return nil
		case <-r.ticker.C():
			r.machine.Tick()
		}
	}
}
