// Package aggregate implements the pre-L1 MultipleJsonDetector
// (spec.md §4.1): it folds `value₁ value₂ … valueₙ` at the top level of
// the input into a single `[value₁, …, valueₙ]` array, before any later
// stage can mistake the siblings for wrapper prose (L1) or silently
// comma-join them (L2).
package aggregate

import (
	"fmt"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/toplevel"
)

// MetadataKey is set on the RepairContext when aggregation fires, so
// L2's object-merging pass knows not to re-wrap the same content (see
// SPEC_FULL.md §14.1's precedence decision).
const MetadataKey = "aggregated"

type Stage struct{}

func New() *Stage { return &Stage{} }

func (s *Stage) Name() string { return "multiple-json-detector" }

func (s *Stage) Process(ctx *action.Context, input []rune) pipeline.Result {
	if !ctx.Options.EnableMultipleJSONAggregation {
		return pipeline.Continue(input)
	}

	spans := toplevel.Split(input)
	if len(spans) < 2 {
		return pipeline.Continue(input)
	}

	out := make([]rune, 0, len(input)+len(spans)+2)
	out = append(out, '[')
	for i, sp := range spans {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, input[sp.Start:sp.End]...)
	}
	out = append(out, ']')

	ctx.Metadata[MetadataKey] = true
	ctx.LogSimple(action.ContentCleaning, fmt.Sprintf("aggregated %d top-level values into an array", len(spans)))

	return pipeline.Continue(out)
}
