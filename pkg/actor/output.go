package actor

import (
	"context"
)

// Output produces values until its callback returns ErrStop, then closes
// its channel.
type Output[T any] struct {
	Base
	Output chan T
}

type OutputCallback[T any] func(context.Context) (T, error)

func NewOutput[T any](
	name string,
	concurrency int,
	callback OutputCallback[T],
) (actor Output[T]) {
	output := make(chan T)
	actor.Name = name
	actor.Concurrency = concurrency
	actor.Output = output
	actor.Callback = func(ctx context.Context) error {
		out, err := callback(ctx)
		if err != nil {
			return err
		}
		return send(ctx, output, out)
	}
	return
}

func (actor *Output[T]) Run(ctx context.Context) error {
	defer close(actor.Output)
	return actor.Base.Run(ctx)
}

func (actor *Output[T]) OutputChan() <-chan T {
	return actor.Output
}

// Slice emits the elements of `items` in order. It keeps a cursor, so the
// producing actor must run a single worker.
func Slice[T any](items []T) OutputCallback[T] {
	var i int
	return func(ctx context.Context) (elt T, err error) {
		if i >= len(items) {
			err = ErrStop
			return
		}
		elt = items[i]
		i++
		return
	}
}

func send[T any](ctx context.Context, ch chan<- T, elt T) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case ch <- elt:
		return nil
	}
}
