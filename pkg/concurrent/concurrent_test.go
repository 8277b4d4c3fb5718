package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelMapPreservesOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	out, errs := ParallelMap(context.Background(), in, 3, func(_ context.Context, v int) (int, error) {
		if v == 4 {
			return 0, errors.New("four")
		}
		return v * v, nil
	})
	assert.Equal(t, []int{1, 4, 9, 0, 25, 36, 49, 64}, out)
	require.Error(t, errs[3])
	assert.NoError(t, errs[0])
}

func TestForEachLimitReturnsFirstError(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	err := ForEachLimit(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, _ int, v int) error {
		calls.Add(1)
		if v == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.LessOrEqual(t, calls.Load(), int32(3))
}

func TestParallelMapMarksSkippedItems(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, errs := ParallelMap(ctx, []string{"a", "b", "c"}, 2, func(_ context.Context, v string) (string, error) {
		return v, nil
	})

	require.Len(t, errs, 3)
	for i, err := range errs {
		assert.ErrorIs(t, err, context.Canceled, "item %d", i)
		assert.Empty(t, out[i])
	}
}
