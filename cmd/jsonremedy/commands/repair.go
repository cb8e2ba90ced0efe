package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nshkrdotcom/jsonremedy"
	"github.com/nshkrdotcom/jsonremedy/internal/display"
	"github.com/nshkrdotcom/jsonremedy/internal/quality"
)

// RepairOptions holds the flags specific to `jsonremedy repair`.
type RepairOptions struct {
	InputFile string
}

// NewRepairCmd builds the `repair` subcommand: read stdin or a file,
// print the repaired JSON (or, under --debug, the full action trail
// and quality score), grounded on the teacher's NewRunCmd/NewDoCmd
// read-process-render shape.
func NewRepairCmd() *cobra.Command {
	var opts RepairOptions

	cmd := &cobra.Command{
		Use:   "repair [file]",
		Short: "Repair malformed JSON from stdin or a file",
		Long: `Reads candidate JSON-ish text from stdin (or the given file),
runs it through the repair pipeline, and prints the resulting valid
JSON. With --debug, also prints the action trail and a confidence
score instead of just the repaired value.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.InputFile = args[0]
			}
			return runRepair(cmd, opts)
		},
	}

	return cmd
}

func runRepair(cmd *cobra.Command, opts RepairOptions) error {
	input, err := readInput(opts.InputFile)
	if err != nil {
		return err
	}

	repairOpts, err := ResolveOptions(cmd)
	if err != nil {
		return err
	}
	format, err := OutputFormat(cmd)
	if err != nil {
		return err
	}

	var result *jsonremedy.RepairResult
	if repairOpts.Debug {
		result, err = jsonremedy.RepairWithDebug(input, repairOpts)
	} else {
		result, err = jsonremedy.Repair(input, repairOpts)
	}
	if err != nil {
		return renderRepairError(format, err)
	}

	return renderRepairResult(format, result)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func renderRepairResult(format string, result *jsonremedy.RepairResult) error {
	switch format {
	case OutputFormatJSON:
		return renderRepairResultJSON(result)
	case OutputFormatQuiet:
		return nil
	default: // auto, text
		return renderRepairResultText(format, result)
	}
}

func renderRepairResultJSON(result *jsonremedy.RepairResult) error {
	envelope := struct {
		Value         any                       `json:"value"`
		Actions       []jsonremedy.RepairAction `json:"actions,omitempty"`
		Quality       *quality.Score            `json:"quality,omitempty"`
		SchemaWarning string                    `json:"schema_warning,omitempty"`
	}{
		Value:         result.Value,
		Actions:       result.Actions,
		Quality:       result.Quality,
		SchemaWarning: result.SchemaWarning,
	}
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(envelope)
}

func renderRepairResultText(format string, result *jsonremedy.RepairResult) error {
	out, err := json.Marshal(result.Value)
	if err != nil {
		return fmt.Errorf("encode repaired value: %w", err)
	}
	fmt.Println(string(out))

	if len(result.Actions) == 0 && result.Quality == nil && result.SchemaWarning == "" {
		return nil
	}

	colorMode := "auto"
	if format == OutputFormatText && !display.NewTerminalInfo().IsTTY() {
		colorMode = "off"
	}
	codec := display.NewANSICodecWithMode(colorMode)

	if len(result.Actions) > 0 {
		fmt.Fprintln(os.Stderr, codec.Muted(fmt.Sprintf("\n%d repair action(s):", len(result.Actions))))
		for _, a := range result.Actions {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", a.Stage, a.Action)
		}
	}
	if result.Quality != nil {
		fmt.Fprintln(os.Stderr, codec.Primary(fmt.Sprintf("quality: %d/100 (%d actions, %d fabricated, %d%% changed)",
			result.Quality.Value, result.Quality.ActionCount, result.Quality.FabricationCount, result.Quality.ChangeRatioPercent)))
	}
	if result.SchemaWarning != "" {
		fmt.Fprintln(os.Stderr, codec.Warning("schema: "+result.SchemaWarning))
	}
	return nil
}

func renderRepairError(format string, err error) error {
	if format == OutputFormatJSON {
		enc := json.NewEncoder(os.Stdout)
		_ = enc.Encode(struct {
			Error string `json:"error"`
		}{Error: err.Error()})
		return err
	}
	return err
}
