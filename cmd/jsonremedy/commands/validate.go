package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nshkrdotcom/jsonremedy"
)

// ValidateOptions holds the flags specific to `jsonremedy validate`.
type ValidateOptions struct {
	InputFile string
	Quiet     bool
}

// NewValidateCmd builds the `validate` subcommand: exit 0 if the input
// is, or becomes, valid JSON under the resolved Strictness, nonzero
// otherwise. Grounded on the teacher's NewValidateCmd shape (read
// input, run checks, report pass/fail with a nonzero exit on failure)
// adapted from manifest-structure checks to repair-pipeline checks.
func NewValidateCmd() *cobra.Command {
	var opts ValidateOptions

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check whether input is, or can be repaired into, valid JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.InputFile = args[0]
			}
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress output; only the exit code matters")

	return cmd
}

func runValidate(cmd *cobra.Command, opts ValidateOptions) error {
	input, err := readInput(opts.InputFile)
	if err != nil {
		return err
	}

	repairOpts, err := ResolveOptions(cmd)
	if err != nil {
		return err
	}

	result, repairErr := jsonremedy.Repair(input, repairOpts)
	if repairErr != nil {
		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "invalid: %v\n", repairErr)
		}
		os.Exit(1)
		return nil
	}

	if !opts.Quiet {
		if len(result.Actions) == 0 {
			fmt.Println("valid: input was already well-formed JSON")
		} else {
			fmt.Printf("valid: repaired with %d action(s)\n", len(result.Actions))
		}
		if result.SchemaWarning != "" {
			fmt.Fprintf(os.Stderr, "schema: %s\n", result.SchemaWarning)
		}
	}
	return nil
}
