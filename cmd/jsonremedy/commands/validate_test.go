package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunValidate_ValidJSONQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

	root := testRoot(t)
	err := runValidate(root, ValidateOptions{InputFile: path, Quiet: true})
	require.NoError(t, err)
}

func TestRunValidate_RepairableJSONQuiet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{'a': 1,}`), 0644))

	root := testRoot(t)
	err := runValidate(root, ValidateOptions{InputFile: path, Quiet: true})
	require.NoError(t, err)
}
