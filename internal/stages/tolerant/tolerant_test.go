package tolerant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

func TestTolerant_FabricatesMissingCloseBrace(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a": 1, "b": 2`))
	require.Equal(t, pipeline.StatusOK, res.Status)
	m, ok := res.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), m["a"])
	assert.Equal(t, float64(2), m["b"])
}

func TestTolerant_FabricatesMissingCloseBracket(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`[1, 2, 3`))
	require.Equal(t, pipeline.StatusOK, res.Status)
	arr, ok := res.Value.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, arr)
}

func TestTolerant_FabricatesMissingClosingQuote(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a": "oops`))
	require.Equal(t, pipeline.StatusOK, res.Status)
	m := res.Value.(map[string]any)
	assert.Equal(t, "oops", m["a"])
}

func TestTolerant_OutputAlwaysRemarshals(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a": [1, {"b": true`))
	require.Equal(t, pipeline.StatusOK, res.Status)
	_, err := json.Marshal(res.Value)
	require.NoError(t, err)
}
