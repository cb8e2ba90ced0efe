package jsonremedy

import (
	"context"
	"errors"

	"github.com/nshkrdotcom/jsonremedy/internal/streaming"
)

// StreamItem pairs one input chunk with the index it was submitted at,
// so RepairStream's results can be matched back to their source after
// concurrent processing.
type StreamItem struct {
	Index int
	Input []byte
}

// StreamResult is one RepairStream output slot. Err is set instead of
// Result when that item failed to repair; the caller decides whether
// one bad item should abort the whole stream.
type StreamResult struct {
	Index  int
	Result *RepairResult
	Err    error
}

// RepairStream runs Repair over every item, bounded by
// Options.StreamConcurrency workers. The worker pool itself lives in
// internal/streaming (grounded on the teacher's ConcurrencyExecutor,
// internal/pipeline/concurrency.go); this wires it to Repair.
//
// When Options.BufferIncomplete is set, items are instead processed
// sequentially: an item whose failure looks like truncation (an
// unclosed string, or an otherwise-unrepairable tail) has its raw
// input carried forward and prepended to the next item's input before
// that item is attempted, so a JSON value split across two stream
// chunks still repairs. Concurrency does not apply in this mode since
// each item's input can depend on the previous one's outcome.
func RepairStream(ctx context.Context, items []StreamItem, opts Options) []StreamResult {
	if opts.BufferIncomplete {
		return repairStreamBuffered(items, opts)
	}

	concurrency := opts.StreamConcurrency
	if concurrency <= 0 {
		concurrency = DefaultOptions().StreamConcurrency
	}

	workItems := make([]streaming.Item, len(items))
	for i, item := range items {
		workItems[i] = streaming.Item{Index: item.Index, Input: item.Input}
	}

	raw := streaming.Run(ctx, workItems, concurrency, func(_ context.Context, input []byte) (any, error) {
		return Repair(input, opts)
	})

	results := make([]StreamResult, len(raw))
	for i, r := range raw {
		res, _ := r.Value.(*RepairResult)
		results[i] = StreamResult{Index: r.Index, Result: res, Err: r.Err}
	}
	return results
}

// repairStreamBuffered processes items in submission order, merging a
// truncated item's input with the next item's before retrying. The
// slot for an item folded into a later one is left as its zero value
// (no Result, no Err): nothing was ever resolved at that index.
func repairStreamBuffered(items []StreamItem, opts Options) []StreamResult {
	results := make([]StreamResult, len(items))
	var carry []byte

	for i, item := range items {
		input := item.Input
		if len(carry) > 0 {
			input = append(append([]byte{}, carry...), input...)
			carry = nil
		}

		res, err := Repair(input, opts)
		if err != nil && isIncomplete(err) && i < len(items)-1 {
			carry = input
			continue
		}

		results[i] = StreamResult{Index: item.Index, Result: res, Err: err}
	}

	return results
}

// isIncomplete reports whether err looks like the input was cut off
// mid-value rather than genuinely malformed, i.e. worth retrying once
// more input arrives instead of surfacing immediately.
func isIncomplete(err error) bool {
	var pe *PipelineError
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Reason {
	case ReasonUnclosedString, ReasonUnrepairable:
		return true
	default:
		return false
	}
}
