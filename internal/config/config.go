// Package config loads a `.jsonremedy.yaml` file into an
// internal/option.Options overlay, grounded on
// internal/manifest/parser.go's yaml.v3-based manifest loader.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

// File mirrors the subset of option.Options a user would reasonably
// want to pin in a project config file, rather than pass as flags on
// every invocation.
type File struct {
	Strictness                    string `yaml:"strictness,omitempty"`
	FastPathOptimization          *bool  `yaml:"fast_path_optimization,omitempty"`
	EarlyExit                     *bool  `yaml:"early_exit,omitempty"`
	MaxSizeMB                     int    `yaml:"max_size_mb,omitempty"`
	TimeoutMS                     int    `yaml:"timeout_ms,omitempty"`
	MaxNestingDepth                int    `yaml:"max_nesting_depth,omitempty"`
	EnableMultipleJSONAggregation *bool  `yaml:"enable_multiple_json_aggregation,omitempty"`
	EnableObjectMerging           *bool  `yaml:"enable_object_merging,omitempty"`
	EnableEarlyHardcodedPatterns  *bool  `yaml:"enable_early_hardcoded_patterns,omitempty"`
	EnableEscapeNormalization     *bool  `yaml:"enable_escape_normalization,omitempty"`
	StreamConcurrency             int    `yaml:"stream_concurrency,omitempty"`
	SchemaPath                    string `yaml:"schema_path,omitempty"`
	AuditDB                       string `yaml:"audit_db,omitempty"`
}

// Load reads and parses a .jsonremedy.yaml file at path. A missing
// file is not an error: Load returns an empty File, which Apply turns
// into the base options unchanged, since the config file is optional
// (spec.md §6's registry has documented defaults for everything).
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Apply overlays a loaded File onto a base Options value — CLI flags
// are expected to overlay the result of this a second time, so flags
// win over file, file wins over option.Default().
func Apply(base option.Options, f File) option.Options {
	out := base

	if f.Strictness != "" {
		if s, ok := option.ParseStrictness(f.Strictness); ok {
			out.Strictness = s
		}
	}
	if f.FastPathOptimization != nil {
		out.FastPathOptimization = *f.FastPathOptimization
	}
	if f.EarlyExit != nil {
		out.EarlyExit = *f.EarlyExit
	}
	if f.MaxSizeMB > 0 {
		out.MaxSizeMB = f.MaxSizeMB
	}
	if f.TimeoutMS > 0 {
		out.TimeoutMS = f.TimeoutMS
	}
	if f.MaxNestingDepth > 0 {
		out.MaxNestingDepth = f.MaxNestingDepth
	}
	if f.EnableMultipleJSONAggregation != nil {
		out.EnableMultipleJSONAggregation = *f.EnableMultipleJSONAggregation
	}
	if f.EnableObjectMerging != nil {
		out.EnableObjectMerging = *f.EnableObjectMerging
	}
	if f.EnableEarlyHardcodedPatterns != nil {
		out.EnableEarlyHardcodedPatterns = *f.EnableEarlyHardcodedPatterns
	}
	if f.EnableEscapeNormalization != nil {
		out.EnableEscapeNormalization = *f.EnableEscapeNormalization
	}
	if f.StreamConcurrency > 0 {
		out.StreamConcurrency = f.StreamConcurrency
	}
	if f.SchemaPath != "" {
		out.SchemaPath = f.SchemaPath
	}
	if f.AuditDB != "" {
		out.AuditDB = f.AuditDB
	}
	return out
}
