package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd_RegistersAllSubcommands(t *testing.T) {
	root := NewRootCmd("test", "abc123", "2026-01-01")

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"repair", "validate", "watch", "inspect"} {
		assert.True(t, names[want], "expected %q subcommand to be registered", want)
	}
}
