package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

func TestAggregate_WrapsMultipleTopLevelValues(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a":1} {"b":2}`))
	require.Equal(t, pipeline.StatusContinue, res.Status)
	assert.Equal(t, `[{"a":1},{"b":2}]`, string(res.Runes))
	assert.Equal(t, true, ctx.Metadata[MetadataKey])
}

func TestAggregate_LeavesSingleValueAlone(t *testing.T) {
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, string(res.Runes))
	assert.Nil(t, ctx.Metadata[MetadataKey])
}

func TestAggregate_DisabledByOption(t *testing.T) {
	opts := option.Default()
	opts.EnableMultipleJSONAggregation = false
	ctx := action.New(opts)
	res := New().Process(ctx, []rune(`{"a":1} {"b":2}`))
	assert.Equal(t, `{"a":1} {"b":2}`, string(res.Runes))
}
