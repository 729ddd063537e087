package actor

import (
	"context"
)

// Map transforms each input into one output.
type Map[I, O any] struct {
	Input[I]
	Output chan O
}

func NewMap[I, O any](
	name string,
	concurrency int,
	input <-chan I,
	callback func(context.Context, I) (O, error),
) (actor Map[I, O]) {
	output := make(chan O)
	actor.Output = output
	actor.Input = NewInput(
		name,
		concurrency,
		input,
		func(ctx context.Context, elt I) error {
			out, err := callback(ctx, elt)
			if err != nil {
				return err
			}
			return send(ctx, output, out)
		},
		nil,
	)
	return
}

func (actor *Map[I, O]) Run(ctx context.Context) error {
	defer close(actor.Output)
	return actor.Input.Run(ctx)
}
