package jsonremedy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairStream_ProcessesEveryItem(t *testing.T) {
	items := []StreamItem{
		{Index: 0, Input: []byte(`{'a':1}`)},
		{Index: 1, Input: []byte(`{"b":2,}`)},
		{Index: 2, Input: []byte(`[1,2,3`)},
	}
	results := RepairStream(context.Background(), items, DefaultOptions())
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.NotNil(t, r.Result)
	}
}

func TestRepairStream_IsolatesIndependentFailures(t *testing.T) {
	items := []StreamItem{
		{Index: 0, Input: []byte(`{"ok":1}`)},
		{Index: 1, Input: []byte("")},
	}
	results := RepairStream(context.Background(), items, DefaultOptions())
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
}

func TestRepairStream_BufferIncompleteMergesTruncatedChunks(t *testing.T) {
	opts := DefaultOptions()
	opts.Strictness = Strict
	opts.BufferIncomplete = true

	items := []StreamItem{
		{Index: 0, Input: []byte(`{"a": "oops`)},
		{Index: 1, Input: []byte(`e"}`)},
	}
	results := RepairStream(context.Background(), items, opts)
	require.Len(t, results, 2)

	assert.Nil(t, results[0].Result)
	assert.NoError(t, results[0].Err)

	require.NoError(t, results[1].Err)
	require.NotNil(t, results[1].Result)
	assert.Equal(t, map[string]any{"a": "oopse"}, results[1].Result.Value)
}

func TestRepairStream_BufferIncompleteSurfacesFinalUnresolvedChunk(t *testing.T) {
	opts := DefaultOptions()
	opts.Strictness = Strict
	opts.BufferIncomplete = true

	items := []StreamItem{
		{Index: 0, Input: []byte(`{"a": "still broken`)},
	}
	results := RepairStream(context.Background(), items, opts)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
