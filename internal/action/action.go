// Package action defines the repair pipeline's audit trail: the
// RepairAction record and the cross-stage RepairContext that carries
// them (spec.md §3).
package action

import "github.com/nshkrdotcom/jsonremedy/internal/option"

// Stage identifies which pipeline layer produced a RepairAction. The
// closed set matches spec.md §3 exactly; the pre-L1 MultipleJsonDetector
// is not one of the five named stages, so its actions are tagged
// ContentCleaning.
type Stage string

const (
	ContentCleaning     Stage = "content-cleaning"
	StructuralRepair    Stage = "structural-repair"
	SyntaxNormalization Stage = "syntax-normalization"
	Validation          Stage = "validation"
	TolerantParsing     Stage = "tolerant-parsing"
)

// Reason is the closed set of error reasons spec.md §6 defines.
type Reason string

const (
	InputTooLarge        Reason = "input-too-large"
	Timeout              Reason = "timeout"
	NestingDepthExceeded Reason = "nesting-depth-exceeded"
	UnclosedString       Reason = "unclosed-string"
	Unrepairable         Reason = "unrepairable"
	InvalidUTF8          Reason = "invalid-utf8"
)

// Record is one RepairAction: an append-only, auditable description of
// a single transformation.
type Record struct {
	Stage       Stage
	Action      string
	Position    *int
	Original    *string
	Replacement *string
}

// Context is handed stage-to-stage for the lifetime of one pipeline
// run and never forked (spec.md §3).
type Context struct {
	Options  option.Options
	Actions  []Record
	Metadata map[string]any
}

// New creates a fresh context for one pipeline run.
func New(opts option.Options) *Context {
	return &Context{
		Options:  opts,
		Actions:  make([]Record, 0, 8),
		Metadata: make(map[string]any),
	}
}

// Log appends a RepairAction. pos/original/replacement are optional;
// pass nil when not applicable.
func (c *Context) Log(stage Stage, act string, pos *int, original, replacement *string) {
	c.Actions = append(c.Actions, Record{
		Stage:       stage,
		Action:      act,
		Position:    pos,
		Original:    original,
		Replacement: replacement,
	})
}

// LogSimple is a convenience wrapper for the common case of an action
// with no position/original/replacement detail.
func (c *Context) LogSimple(stage Stage, act string) {
	c.Log(stage, act, nil, nil, nil)
}

// IntPtr and StrPtr are small helpers for building Log's optional
// arguments inline at call sites.
func IntPtr(v int) *int       { return &v }
func StrPtr(v string) *string { return &v }
