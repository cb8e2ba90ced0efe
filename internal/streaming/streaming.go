// Package streaming is the bounded-concurrency worker pool behind
// RepairStream, grounded on internal/pipeline/concurrency.go's
// ConcurrencyExecutor (errgroup + SetLimit). It is split out from the
// root package because it has no dependency on the repair pipeline
// itself — it only needs a function to call per item — and the root
// package wires it to Repair.
package streaming

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Item pairs one input with the index it was submitted at, so results
// can be matched back to their source after concurrent processing.
type Item struct {
	Index int
	Input []byte
}

// Result is one worker's outcome. Err is set instead of Value when that
// item's work function failed.
type Result struct {
	Index int
	Value any
	Err   error
}

// Run executes work over every item concurrently, bounded by
// concurrency workers. Unlike the teacher's fail-fast
// ConcurrencyExecutor, Run does not cancel sibling items on a single
// failure — each item's outcome is independent, since one malformed
// chunk in a stream should not sink the rest.
func Run(ctx context.Context, items []Item, concurrency int, work func(context.Context, []byte) (any, error)) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if gctx.Err() != nil {
				results[i] = Result{Index: item.Index, Err: gctx.Err()}
				return nil
			}
			v, err := work(gctx, item.Input)
			results[i] = Result{Index: item.Index, Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
