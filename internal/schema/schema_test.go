package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func TestCheck_ConformingValuePasses(t *testing.T) {
	res := Check([]byte(sample), map[string]any{"name": "alice"})
	assert.True(t, res.Conforms)
	assert.Empty(t, res.Warning)
}

func TestCheck_NonConformingValueWarnsButDoesNotPanic(t *testing.T) {
	res := Check([]byte(sample), map[string]any{"age": 9})
	assert.False(t, res.Conforms)
	assert.NotEmpty(t, res.Warning)
}

func TestCheck_InvalidSchemaJSONReportsWarning(t *testing.T) {
	res := Check([]byte("not json"), map[string]any{})
	assert.False(t, res.Conforms)
	assert.Contains(t, res.Warning, "parse schema")
}

func TestCheckFile_MissingFileReportsWarning(t *testing.T) {
	res := CheckFile("/nonexistent/schema.json", map[string]any{})
	assert.False(t, res.Conforms)
	assert.Contains(t, res.Warning, "read")
}
