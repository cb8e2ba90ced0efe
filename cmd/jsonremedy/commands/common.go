package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nshkrdotcom/jsonremedy/internal/config"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

// Output format constants, grounded on the teacher's CreateEmitter
// switch (auto/json/text/quiet) — jsonremedy repairs one document per
// call, so there is no progress display to select between formats for,
// only the final rendering of one RepairResult.
const (
	OutputFormatAuto  = "auto"
	OutputFormatJSON  = "json"
	OutputFormatText  = "text"
	OutputFormatQuiet = "quiet"
)

// ValidateOutputFormat checks that the output format is one of the
// four recognized values.
func ValidateOutputFormat(format string) error {
	switch format {
	case OutputFormatAuto, OutputFormatJSON, OutputFormatText, OutputFormatQuiet:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be auto, json, text, or quiet", format)
	}
}

// ResolveOptions builds an option.Options by layering, in increasing
// priority: option.Default(), the config file at --config (if it
// exists), then the persistent CLI flags. Every subcommand calls this
// once so a flag set on any of them behaves identically.
func ResolveOptions(cmd *cobra.Command) (option.Options, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")
	file, err := config.Load(configPath)
	if err != nil {
		return option.Options{}, err
	}
	opts := config.Apply(option.Default(), file)

	if s, _ := cmd.Root().PersistentFlags().GetString("strictness"); s != "" {
		parsed, ok := option.ParseStrictness(s)
		if !ok {
			return option.Options{}, fmt.Errorf("invalid --strictness %q: must be lenient, strict, or permissive", s)
		}
		opts.Strictness = parsed
	}
	if debug, _ := cmd.Root().PersistentFlags().GetBool("debug"); debug {
		opts.Debug = true
		opts.Logging = true
	}
	if schemaPath, _ := cmd.Root().PersistentFlags().GetString("schema"); schemaPath != "" {
		opts.SchemaPath = schemaPath
	}
	if auditDB, _ := cmd.Root().PersistentFlags().GetString("audit-db"); auditDB != "" {
		opts.AuditDB = auditDB
	}

	return opts, nil
}

// OutputFormat reads the -o/--output persistent flag, defaulting to
// "auto" and validating it.
func OutputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Root().PersistentFlags().GetString("output")
	if format == "" {
		format = OutputFormatAuto
	}
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
