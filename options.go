package jsonremedy

import "github.com/nshkrdotcom/jsonremedy/internal/option"

// Strictness controls how hard the pipeline tries before giving up.
// Lenient runs every stage including tolerant parsing; Strict disables
// L5 entirely so a repair either fully succeeds through L4 or fails;
// Permissive is accepted but runs exactly like Lenient, since L5 has no
// tunable thresholds.
type Strictness = option.Strictness

const (
	Lenient    = option.Lenient
	Strict     = option.Strict
	Permissive = option.Permissive
)

// Options is the process-wide, read-only-at-call-start configuration
// registry described by spec.md §6, plus the ambient knobs the CLI and
// supporting packages (streaming, audit, schema) add.
type Options = option.Options

// DefaultOptions returns the documented default configuration.
func DefaultOptions() Options {
	return option.Default()
}
