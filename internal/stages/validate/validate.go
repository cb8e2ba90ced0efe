// Package validate implements L4 Validation (spec.md §4.5): a strict
// encoding/json decode used both as a fast-path probe ahead of the
// whole pipeline and as the ordinary post-L3 pipeline stage.
package validate

import (
	"encoding/json"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/charutil"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
)

type Stage struct{}

func New() *Stage { return &Stage{} }

func (s *Stage) Name() string { return "validation" }

// Process attempts a strict decode of input. On success it terminates
// the pipeline with the decoded value (spec.md §4.5: "if valid,
// terminate the pipeline immediately"); on failure it passes the text
// through unchanged, deferring to L5 (or an Unrepairable error, if
// strictness forbids L5).
func (s *Stage) Process(ctx *action.Context, input []rune) pipeline.Result {
	if value, ok := Decode(input); ok {
		return pipeline.OK(input, value)
	}
	return pipeline.Continue(input)
}

// Decode runs the strict parse used by both the fast path (called
// before any stage work, per SPEC_FULL.md §15.5) and the ordinary
// pipeline stage above.
func Decode(input []rune) (any, bool) {
	var value any
	if err := json.Unmarshal(charutil.EncodeUTF8(input), &value); err != nil {
		return nil, false
	}
	return value, true
}
