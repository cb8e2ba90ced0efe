package main

import (
	"fmt"
	"os"

	"github.com/nshkrdotcom/jsonremedy/cmd/jsonremedy/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := commands.NewRootCmd(version, commit, date)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
