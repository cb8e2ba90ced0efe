package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// what was written, grounded on the teacher's captureOutput helper.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String()
}

func TestReadInput_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestReadInput_MissingFileErrors(t *testing.T) {
	_, err := readInput(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRenderRepairResultJSON_EmitsValueAndActions(t *testing.T) {
	result := &jsonremedy.RepairResult{
		Value:   map[string]any{"a": float64(1)},
		Actions: []jsonremedy.RepairAction{{Stage: "structural-repair", Action: "inserted closing brace"}},
	}

	out := captureStdout(t, func() {
		require.NoError(t, renderRepairResultJSON(result))
	})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, float64(1), decoded["value"].(map[string]any)["a"])
	assert.Len(t, decoded["actions"], 1)
}

func TestRenderRepairResult_QuietPrintsNothing(t *testing.T) {
	result := &jsonremedy.RepairResult{Value: map[string]any{"a": float64(1)}}

	out := captureStdout(t, func() {
		require.NoError(t, renderRepairResult(OutputFormatQuiet, result))
	})
	assert.Empty(t, out)
}
