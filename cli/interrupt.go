package cli

// This file contains cancellation of long-running work on interrupt.

import (
	"context"

	"github.com/perfgo/nextest/signals"
)

// interruptible returns a context that is canceled when the process is
// interrupted. stop must be called once the work is done.
func (a *App) interruptible(parent context.Context) (ctx context.Context, stop func(), err error) {
	handler, err := signals.New()
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(parent)
	go func() {
		for ev := range handler.Events() {
			a.logger.Warn().Stringer("event", ev).Msg("Stopping test listing")
			cancel()
		}
	}()

	return ctx, func() {
		handler.Close()
		cancel()
	}, nil
}
