// Package option defines the repair pipeline's options registry.
//
// It is read-only once a pipeline run starts (see spec.md §5): the
// registry is built once at call entry and handed to every stage by
// value.
package option

import "time"

// Strictness controls how aggressively the pipeline tries to recover
// unparseable input.
type Strictness int

const (
	// Lenient runs every stage, including tolerant parsing.
	Lenient Strictness = iota
	// Strict disables L5 tolerant parsing entirely.
	Strict
	// Permissive is accepted, but the pipeline runs it exactly like
	// Lenient: L5 has no tunable thresholds to lower.
	Permissive
)

func (s Strictness) String() string {
	switch s {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	default:
		return "lenient"
	}
}

// ParseStrictness parses the three recognized option values.
func ParseStrictness(s string) (Strictness, bool) {
	switch s {
	case "strict":
		return Strict, true
	case "permissive":
		return Permissive, true
	case "lenient", "":
		return Lenient, true
	default:
		return Lenient, false
	}
}

// Options is the complete recognized option set from spec.md §6, plus
// the ambient knobs the CLI and supporting packages need (streaming
// concurrency, audit, schema, debug logging).
type Options struct {
	Logging                      bool
	FastPathOptimization         bool
	Strictness                   Strictness
	EarlyExit                    bool
	MaxSizeMB                    int
	TimeoutMS                    int
	MaxNestingDepth               int
	EnableMultipleJSONAggregation bool
	EnableObjectMerging           bool
	EnableEarlyHardcodedPatterns  bool
	EnableEscapeNormalization     bool

	// BufferIncomplete makes RepairStream process items in order and,
	// when an item (other than the last) fails with an unclosed-string
	// or unrepairable error, prepend its input to the next item's
	// instead of reporting the failure. An item that repairs
	// successfully is never carried forward (spec.md §6).
	BufferIncomplete bool

	// StreamConcurrency bounds how many stream items RepairStream
	// processes in flight at once (ambient: internal/streaming).
	StreamConcurrency int

	// MaxL5Attempts is carried in the registry (default 3), but
	// internal/stages/tolerant makes a single recursive-descent pass
	// and does not read it.
	MaxL5Attempts int

	// SchemaPath, if set, runs an optional post-repair JSON Schema
	// conformance check (ambient: internal/schema). A schema mismatch
	// is reported as a warning, never a hard failure.
	SchemaPath string

	// AuditDB, if set, appends every RepairAction to a SQLite ledger
	// at this path (ambient: internal/audit).
	AuditDB string

	// Debug enables stage-transition tracing via internal/obslog.
	Debug bool
}

// Default returns the documented default options (spec.md §6).
func Default() Options {
	return Options{
		Logging:                       false,
		FastPathOptimization:          true,
		Strictness:                    Lenient,
		EarlyExit:                     true,
		MaxSizeMB:                     10,
		TimeoutMS:                     5000,
		MaxNestingDepth:               50,
		EnableMultipleJSONAggregation: true,
		EnableObjectMerging:           true,
		EnableEarlyHardcodedPatterns:  true,
		EnableEscapeNormalization:     false,
		BufferIncomplete:              false,
		StreamConcurrency:             4,
		MaxL5Attempts:                 3,
	}
}

// Timeout returns TimeoutMS as a time.Duration, falling back to the
// default when unset.
func (o Options) Timeout() time.Duration {
	if o.TimeoutMS <= 0 {
		return time.Duration(Default().TimeoutMS) * time.Millisecond
	}
	return time.Duration(o.TimeoutMS) * time.Millisecond
}

// MaxSizeBytes returns MaxSizeMB converted to bytes.
func (o Options) MaxSizeBytes() int64 {
	mb := o.MaxSizeMB
	if mb <= 0 {
		mb = Default().MaxSizeMB
	}
	return int64(mb) * 1024 * 1024
}
