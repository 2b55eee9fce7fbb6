// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"

	"go.uber.org/multierr"
)

// Process runs a worker pool over the provided work items, invoking process for each.
// A failing item does not stop the pool: onError, when set, is called with the item and
// its error, and every error is returned combined. Cancelling ctx stops dispatching new
// items and the context error is included in the result.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
	onError func(T, error),
) error {
	if workerCount <= 0 {
		workerCount = 1
	}

	var (
		mu   sync.Mutex
		errs error
	)
	tasks := make(chan T, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if err := process(ctx, item); err != nil {
					if onError != nil {
						onError(item, err)
					}
					mu.Lock()
					errs = multierr.Append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

dispatch:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break dispatch
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}
