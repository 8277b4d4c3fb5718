package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEachLimit runs action for every item with at most workers goroutines.
// The first error cancels ctx for the remaining actions and is returned.
func ForEachLimit[T any](ctx context.Context, items []T, workers int, action func(context.Context, int, T) error) error {
	if workers <= 0 {
		workers = 1
	}
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, item := range items {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return action(gctx, idx, item)
		})
	}

	return group.Wait()
}

// ParallelMap applies mapFn to each element with at most workers goroutines, preserving order.
// Errors are collected per element instead of aborting the batch. Elements
// that never started because ctx ended get the context error.
func ParallelMap[T any, R any](ctx context.Context, in []T, workers int, mapFn func(context.Context, T) (R, error)) ([]R, []error) {
	out := make([]R, len(in))
	errs := make([]error, len(in))
	started := make([]bool, len(in))
	err := ForEachLimit(ctx, in, workers, func(ctx context.Context, i int, v T) error {
		started[i] = true
		out[i], errs[i] = mapFn(ctx, v)
		return nil
	})
	if err != nil {
		for i := range errs {
			if !started[i] {
				errs[i] = err
			}
		}
	}
	return out, errs
}
