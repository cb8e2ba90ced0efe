// Package pipeline defines the shared Stage trait and discriminated
// Result union every repair layer implements (the original
// `process/2, supports?/1, priority/0, name/0, validate_options/1`
// behavior contract generalizes, in a typed language, to a single
// interface with a three-state return), plus the fixed-order
// Orchestrator that runs the five named stages.
package pipeline

import "github.com/nshkrdotcom/jsonremedy/internal/action"

// Status is the discriminated union spec.md §2 describes: a stage
// either produces a terminal value (OK), makes no applicable change
// and passes through (Continue), or fails outright (Error).
type Status int

const (
	StatusOK Status = iota
	StatusContinue
	StatusError
)

// Result is what every Stage.Process call returns.
type Result struct {
	Status Status
	Runes  []rune
	Value  any
	Reason action.Reason
}

// OK builds a terminal success result carrying a decoded value.
func OK(runes []rune, value any) Result {
	return Result{Status: StatusOK, Runes: runes, Value: value}
}

// Continue builds a pass-through result: the stage applied zero or
// more transformations but did not (and cannot) terminate the
// pipeline itself.
func Continue(runes []rune) Result {
	return Result{Status: StatusContinue, Runes: runes}
}

// Err builds a terminal failure result.
func Err(reason action.Reason) Result {
	return Result{Status: StatusError, Reason: reason}
}

// Stage is the uniform contract every repair layer implements.
type Stage interface {
	Name() string
	Process(ctx *action.Context, input []rune) Result
}

// Run executes stages in order against input, short-circuiting on the
// first Error, and — when ctx.Options.EarlyExit is set — on the first
// OK. A Continue result's runes feed the next stage.
func Run(stages []Stage, ctx *action.Context, input []rune) Result {
	cur := input
	for _, st := range stages {
		res := st.Process(ctx, cur)
		switch res.Status {
		case StatusError:
			return res
		case StatusOK:
			if ctx.Options.EarlyExit {
				return res
			}
			cur = res.Runes
		default: // StatusContinue
			cur = res.Runes
		}
	}
	return Continue(cur)
}
