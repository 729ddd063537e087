package actor

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline(t *testing.T) {
	source := NewOutput("source", 1, Slice([]int{1, 2, 3, 4}))
	square := NewMap("square", 3, source.Output, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})

	var (
		mu   sync.Mutex
		got  []int
		done int
	)
	sink := NewInput("sink", 2, square.Output,
		func(_ context.Context, i int) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, i)
			return nil
		},
		func(context.Context) error {
			done++
			return nil
		},
	)

	require.NoError(t, Multi{&source, &square, &sink}.Run(context.Background()))
	slices.Sort(got)
	assert.Equal(t, []int{1, 4, 9, 16}, got)
	assert.Equal(t, 1, done)
}

func TestPipelineStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	source := NewOutput("source", 1, Slice([]int{1, 2, 3}))
	sink := NewInput("sink", 1, source.Output,
		func(_ context.Context, i int) error {
			if i == 2 {
				return boom
			}
			return nil
		},
		func(context.Context) error {
			t.Error("done ran after a failure")
			return nil
		},
	)

	err := Multi{&source, &sink}.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "sink")
}
