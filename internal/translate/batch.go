package translate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// translates one request's worth of items
type batchFunc func(ctx context.Context, items []Item) ([]Result, error)

func splitBatches(items []Item, size int) [][]Item {
	var batches [][]Item
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

// translateInBatches sends items in batches of BatchSize, at most Concurrency
// requests at a time. The first failing batch cancels the rest. Results come
// back in batch order.
func translateInBatches(
	ctx context.Context,
	translate batchFunc,
	items []Item,
	opts Options,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	batches := splitBatches(items, opts.batchSize())
	if len(batches) == 1 {
		return translate(ctx, batches[0])
	}

	perBatch := make([][]Result, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for i, batch := range batches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results, err := translate(gctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			perBatch[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]Result, 0, len(items))
	for _, results := range perBatch {
		all = append(all, results...)
	}
	return all, nil
}
