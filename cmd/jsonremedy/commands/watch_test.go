package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy"
)

func TestRepairStream_MixedValidAndRepairable(t *testing.T) {
	items := []jsonremedy.StreamItem{
		{Index: 0, Input: []byte(`{"a":1}`)},
		{Index: 1, Input: []byte(`{'b': 2,}`)},
		{Index: 2, Input: []byte(`not json at all {{{`)},
	}

	results := jsonremedy.RepairStream(context.Background(), items, jsonremedy.DefaultOptions())
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1, results[1].Index)
}
