package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the jsonremedy root command and wires every
// subcommand onto it, grounded on the teacher's rootCmd + init()
// wiring in cmd/wave/main.go.
func NewRootCmd(version, commit, date string) *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonremedy",
		Short: "Repair malformed, LLM-wrapped, or truncated JSON",
		Long: `jsonremedy repairs malformed, LLM-wrapped, or truncated JSON-ish
text into valid JSON: stripping code fences and prose, balancing
brackets, normalizing quotes and literals, and falling back to a
bounded tolerant parse when strict decoding still fails.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}
	root.SetVersionTemplate("jsonremedy version {{.Version}}\n")

	root.PersistentFlags().StringP("config", "c", ".jsonremedy.yaml", "Path to config file")
	root.PersistentFlags().StringP("strictness", "s", "", "Strictness: lenient, strict, permissive")
	root.PersistentFlags().BoolP("debug", "d", false, "Enable debug mode (action trail + quality score)")
	root.PersistentFlags().StringP("output", "o", "auto", "Output format: auto, json, text, quiet")
	root.PersistentFlags().String("schema", "", "JSON Schema file to check the repaired value against")
	root.PersistentFlags().String("audit-db", "", "SQLite path to append every repair's action trail to")

	root.AddCommand(NewRepairCmd())
	root.AddCommand(NewValidateCmd())
	root.AddCommand(NewWatchCmd())
	root.AddCommand(NewInspectCmd())

	return root
}
