// Package concurrency runs per-item work on a bounded pool of goroutines.
package concurrency

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultWorkers is used when Options.MaxWorkers is not positive.
const DefaultWorkers = 10

type Options struct {
	MaxWorkers int
}

func DefaultOptions() Options {
	return Options{MaxWorkers: DefaultWorkers}
}

// Map calls fn for every item on at most opts.MaxWorkers goroutines and
// returns the results in input order. Failed items keep their zero value;
// their errors are joined, each wrapped with its item index. Items not
// started before ctx is done fail with ctx.Err().
func Map[T, R any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, len(items))

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	errs := make([]error, len(items))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = fmt.Errorf("item %d: %w", i, err)
					continue
				}
				r, err := fn(ctx, i, items[i])
				if err != nil {
					errs[i] = fmt.Errorf("item %d: %w", i, err)
					continue
				}
				results[i] = r
			}
		}()
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

// ForEach is Map for side effects only.
func ForEach[T any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(ctx context.Context, index int, item T) error,
) error {
	_, err := Map(ctx, items, opts, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, i, item)
	})
	return err
}
