package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

type BaseCallback func(context.Context) error

// Base calls Callback in a loop from Concurrency workers until the callback
// returns ErrStop or fails.
type Base struct {
	Name        string
	Concurrency int
	Callback    BaseCallback
}

func (actor *Base) Run(ctx context.Context) error {
	slog.Debug("starting actor", "name", actor.Name)
	defer slog.Debug("closing actor", "name", actor.Name)

	group, ctx := errgroup.WithContext(ctx)
	for range max(actor.Concurrency, 1) {
		group.Go(func() error { return actor.loop(ctx) })
	}
	return group.Wait()
}

func (actor *Base) loop(ctx context.Context) error {
	for {
		if err := actor.Callback(ctx); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return fmt.Errorf("%s: %w", actor.Name, err)
		}
	}
}

// ErrStop ends a worker without error.
var ErrStop = errors.New("stop")
