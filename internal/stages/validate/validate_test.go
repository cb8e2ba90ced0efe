package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

func TestDecode_ValidJSON(t *testing.T) {
	value, ok := Decode([]rune(`{"a":1,"b":[1,2,3]}`))
	require.True(t, ok)
	m, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), m["a"])
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, ok := Decode([]rune(`{"a":}`))
	assert.False(t, ok)
}

func TestStage_TerminatesOnValidInput(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a":1}`))
	require.Equal(t, pipeline.StatusOK, res.Status)
	assert.NotNil(t, res.Value)
}

func TestStage_PassesThroughOnInvalidInput(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a":}`))
	require.Equal(t, pipeline.StatusContinue, res.Status)
}
