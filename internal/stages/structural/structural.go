// Package structural implements L2 StructuralRepair (spec.md §4.3): it
// balances `{}`/`[]`, drops extra closers, fixes type-mismatched
// closers, and wraps concatenated top-level siblings, driven by a
// frame stack (the StructuralState of spec.md §3).
package structural

import (
	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
	"github.com/nshkrdotcom/jsonremedy/internal/stages/aggregate"
	"github.com/nshkrdotcom/jsonremedy/internal/toplevel"
)

// frameKind mirrors spec.md §3's three StructuralState frame variants.
// The object-expecting-key/value distinction doesn't change L2's
// close-matching behavior (that richer tracking belongs to L3's
// ScanState), but is kept for data-model fidelity and because it lets
// L2 participate correctly if a future stage inspects the frame.
type frameKind int

const (
	frameObjectKey frameKind = iota
	frameObjectValue
	frameArray
)

func (k frameKind) isObject() bool { return k != frameArray }

type Stage struct{}

func New() *Stage { return &Stage{} }

func (s *Stage) Name() string { return "structural-repair" }

func (s *Stage) Process(ctx *action.Context, input []rune) pipeline.Result {
	out, stack, inString, reason, ok := s.scan(ctx, input)
	if !ok {
		return pipeline.Err(reason)
	}

	// Unclosed string at EOF: hard failure only when no later stage
	// (L5) can attempt recovery (spec.md §4.3 Failure clause).
	if inString && ctx.Options.Strictness == option.Strict {
		return pipeline.Err(action.UnclosedString)
	}

	// Close every remaining open frame, innermost first.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.isObject() {
			out = append(out, '}')
			ctx.LogSimple(action.StructuralRepair, "added missing closing brace")
		} else {
			out = append(out, ']')
			ctx.LogSimple(action.StructuralRepair, "added missing closing bracket")
		}
	}

	if ctx.Options.EnableObjectMerging {
		if aggregated, _ := ctx.Metadata[aggregate.MetadataKey].(bool); !aggregated {
			if wrapped, did := wrapConcatenatedSiblings(out); did {
				out = wrapped
				ctx.LogSimple(action.StructuralRepair, "wrapped concatenated top-level values into an array")
			}
		}
	}

	return pipeline.Continue(out)
}

// scan runs the single left-to-right structural pass. It returns the
// rebuilt output, the frame stack as left at EOF, whether the scan
// ended inside a string, and an error signal for depth overflow.
func (s *Stage) scan(ctx *action.Context, input []rune) (out []rune, stack []frameKind, inString bool, reason action.Reason, ok bool) {
	out = make([]rune, 0, len(input)+8)
	stack = make([]frameKind, 0, 8)

	maxDepth := ctx.Options.MaxNestingDepth
	if maxDepth <= 0 {
		maxDepth = 50
	}

	var delim rune
	escaped := false

	n := len(input)
	i := 0
	for i < n {
		c := input[i]

		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == delim:
				inString = false
			}
			i++
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			delim = c
			out = append(out, c)
			i++

		case '{':
			stack = append(stack, frameObjectKey)
			if len(stack) > maxDepth {
				return nil, nil, false, action.NestingDepthExceeded, false
			}
			out = append(out, c)
			i++

		case '[':
			stack = append(stack, frameArray)
			if len(stack) > maxDepth {
				return nil, nil, false, action.NestingDepthExceeded, false
			}
			out = append(out, c)
			i++

		case '}':
			i = s.closeFrame(ctx, &out, &stack, true, i)

		case ']':
			i = s.closeFrame(ctx, &out, &stack, false, i)

		case ':':
			if len(stack) > 0 && stack[len(stack)-1] == frameObjectKey {
				stack[len(stack)-1] = frameObjectValue
			}
			out = append(out, c)
			i++

		case ',':
			if len(stack) > 0 && stack[len(stack)-1] == frameObjectValue {
				stack[len(stack)-1] = frameObjectKey
			}
			out = append(out, c)
			i++

		default:
			out = append(out, c)
			i++
		}
	}

	return out, stack, inString, "", true
}

// closeFrame handles a `}` (wantObject=true) or `]` (wantObject=false)
// at position i, per spec.md §4.3's three cases: matching pop, type
// mismatch (close the real top with its correct closer, then
// re-examine this character), or an empty stack (drop it as an extra
// closer). It returns the new cursor position.
func (s *Stage) closeFrame(ctx *action.Context, out *[]rune, stack *[]frameKind, wantObject bool, i int) int {
	if len(*stack) == 0 {
		ch := "}"
		if !wantObject {
			ch = "]"
		}
		ctx.Log(action.StructuralRepair, "removed extra closing delimiter", action.IntPtr(i), action.StrPtr(ch), nil)
		return i + 1
	}

	top := (*stack)[len(*stack)-1]
	if top.isObject() == wantObject {
		*stack = (*stack)[:len(*stack)-1]
		if wantObject {
			*out = append(*out, '}')
		} else {
			*out = append(*out, ']')
		}
		return i + 1
	}

	// Type mismatch: close the actual top frame with its correct
	// closer first, then re-examine the same character against the
	// new top.
	*stack = (*stack)[:len(*stack)-1]
	if top.isObject() {
		*out = append(*out, '}')
		ctx.LogSimple(action.StructuralRepair, "closed type-mismatched delimiter")
	} else {
		*out = append(*out, ']')
		ctx.LogSimple(action.StructuralRepair, "closed type-mismatched delimiter")
	}
	if wantObject {
		return s.closeFrame(ctx, out, stack, true, i)
	}
	return s.closeFrame(ctx, out, stack, false, i)
}

// wrapConcatenatedSiblings implements the object-merging half of
// spec.md §4.3's comma rule: if, after balancing, the text still holds
// two or more independent top-level values (e.g. `{"a":1}{"b":2}` with
// no separating comma at all), wrap the whole run into a single array.
func wrapConcatenatedSiblings(input []rune) ([]rune, bool) {
	spans := toplevel.Split(input)
	if len(spans) < 2 {
		return input, false
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
	return out, true
}
