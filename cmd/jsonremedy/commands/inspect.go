package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nshkrdotcom/jsonremedy"
	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/inspector"
)

// InspectOptions holds the flags specific to `jsonremedy inspect`.
type InspectOptions struct {
	InputFile string
}

// NewInspectCmd builds the `inspect` subcommand: repairs the given
// input with the full action trail, lets the user pick which stage to
// drill into via a huh.Select (grounded on the teacher's
// run_selector.go form), then launches internal/inspector over the
// filtered records.
func NewInspectCmd() *cobra.Command {
	var opts InspectOptions

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Interactively browse a repair's action trail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.InputFile = args[0]
			}
			return runInspect(cmd, opts)
		},
	}

	return cmd
}

func runInspect(cmd *cobra.Command, opts InspectOptions) error {
	input, err := readInput(opts.InputFile)
	if err != nil {
		return err
	}

	repairOpts, err := ResolveOptions(cmd)
	if err != nil {
		return err
	}

	result, err := jsonremedy.RepairWithDebug(input, repairOpts)
	if err != nil {
		return err
	}

	fmt.Println(inspector.Logo())

	records := toActionRecords(result.Actions)
	if len(records) == 0 {
		fmt.Println("no repair actions were recorded — input was already valid JSON")
		return nil
	}

	stage, err := pickStage(records)
	if err != nil {
		return err
	}
	if stage != "" {
		records = filterByStage(records, stage)
	}

	return inspector.Run(records)
}

func toActionRecords(actions []jsonremedy.RepairAction) []action.Record {
	out := make([]action.Record, len(actions))
	for i, a := range actions {
		out[i] = action.Record{
			Stage:       action.Stage(a.Stage),
			Action:      a.Action,
			Position:    a.Position,
			Original:    a.Original,
			Replacement: a.Replacement,
		}
	}
	return out
}

// pickStage offers "all stages" plus every distinct stage present in
// records. An empty return means "all stages".
func pickStage(records []action.Record) (string, error) {
	seen := make(map[string]bool)
	var stages []string
	for _, r := range records {
		s := string(r.Stage)
		if !seen[s] {
			seen[s] = true
			stages = append(stages, s)
		}
	}
	if len(stages) <= 1 {
		return "", nil
	}

	options := []huh.Option[string]{huh.NewOption("all stages", "")}
	for _, s := range stages {
		options = append(options, huh.NewOption(s, s))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Filter to stage").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func filterByStage(records []action.Record, stage string) []action.Record {
	var out []action.Record
	for _, r := range records {
		if string(r.Stage) == stage {
			out = append(out, r)
		}
	}
	return out
}
