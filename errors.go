package jsonremedy

import (
	"fmt"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
)

// ErrorReason mirrors the internal action.Reason closed set for public
// consumption, so callers can branch on why a repair failed without
// importing an internal package.
type ErrorReason string

const (
	ReasonInputTooLarge        ErrorReason = ErrorReason(action.InputTooLarge)
	ReasonTimeout              ErrorReason = ErrorReason(action.Timeout)
	ReasonNestingDepthExceeded ErrorReason = ErrorReason(action.NestingDepthExceeded)
	ReasonUnclosedString       ErrorReason = ErrorReason(action.UnclosedString)
	ReasonUnrepairable         ErrorReason = ErrorReason(action.Unrepairable)
	ReasonInvalidUTF8          ErrorReason = ErrorReason(action.InvalidUTF8)
)

// PipelineError reports why Repair could not produce valid JSON,
// carrying the partial action trail gathered before failure.
type PipelineError struct {
	Reason  ErrorReason
	Stage   string
	Actions []RepairAction
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("jsonremedy: repair failed at %s: %s", e.Stage, e.Reason)
}

func newPipelineError(reason action.Reason, stage string, actions []RepairAction) *PipelineError {
	return &PipelineError{Reason: ErrorReason(reason), Stage: stage, Actions: actions}
}
