package actor

import (
	"context"
	"fmt"
)

// Input consumes a channel. Done, if set, runs once after every worker has
// drained the input.
type Input[T any] struct {
	Base
	Input <-chan T
	Done  func(ctx context.Context) error
}

type InputCallback[T any] func(ctx context.Context, elt T) error

func NewInput[T any](
	name string,
	concurrency int,
	input <-chan T,
	callback InputCallback[T],
	done func(ctx context.Context) error,
) (actor Input[T]) {
	actor.Name = name
	actor.Concurrency = concurrency
	actor.Input = input
	actor.Done = done
	actor.Callback = func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case elt, ok := <-input:
			if !ok {
				return ErrStop
			}
			return callback(ctx, elt)
		}
	}
	return
}

func (actor *Input[T]) Run(ctx context.Context) error {
	if err := actor.Base.Run(ctx); err != nil {
		return err
	}
	if actor.Done != nil {
		if err := actor.Done(ctx); err != nil {
			return fmt.Errorf("%s: %w", actor.Name, err)
		}
	}
	return nil
}
