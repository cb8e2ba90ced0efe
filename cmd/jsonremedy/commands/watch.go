package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nshkrdotcom/jsonremedy"
)

// NewWatchCmd builds the `watch` subcommand: reads newline-delimited
// JSON-ish records from stdin until EOF, repairs them via RepairStream,
// and then prints one NDJSON result line per input line, in input
// order, once every line has been processed. Grounded on the teacher's NDJSON emitter
// (event.NewNDJSONEmitter in cmd/wave/commands/output.go) — jsonremedy
// has no event bus, so this writes the NDJSON directly.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repair newline-delimited JSON records from stdin as a stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command) error {
	repairOpts, err := ResolveOptions(cmd)
	if err != nil {
		return err
	}

	var items []jsonremedy.StreamItem
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for i := 0; scanner.Scan(); i++ {
		line := append([]byte(nil), scanner.Bytes()...)
		items = append(items, jsonremedy.StreamItem{Index: i, Input: line})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	results := jsonremedy.RepairStream(context.Background(), items, repairOpts)

	enc := json.NewEncoder(os.Stdout)
	for _, r := range results {
		line := struct {
			Index int    `json:"index"`
			Value any    `json:"value,omitempty"`
			Error string `json:"error,omitempty"`
		}{Index: r.Index}
		if r.Err != nil {
			line.Error = r.Err.Error()
		} else {
			line.Value = r.Result.Value
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("write result %d: %w", r.Index, err)
		}
	}
	return nil
}
