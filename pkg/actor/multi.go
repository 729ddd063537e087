package actor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Multi runs actors together and returns the first error, cancelling the
// others.
type Multi []Actor

func (actors Multi) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, a := range actors {
		group.Go(func() error { return a.Run(ctx) })
	}
	return group.Wait()
}
