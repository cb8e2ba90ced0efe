package streaming

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ProcessesEveryItemIndependently(t *testing.T) {
	items := []Item{
		{Index: 0, Input: []byte("a")},
		{Index: 1, Input: []byte("b")},
		{Index: 2, Input: []byte("fail")},
	}
	results := Run(context.Background(), items, 2, func(_ context.Context, in []byte) (any, error) {
		if string(in) == "fail" {
			return nil, errors.New("boom")
		}
		return string(in) + "!", nil
	})

	require.Len(t, results, 3)
	assert.Equal(t, "a!", results[0].Value)
	assert.Equal(t, "b!", results[1].Value)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[2].Err)
}

func TestRun_DefaultsConcurrencyToOne(t *testing.T) {
	results := Run(context.Background(), []Item{{Index: 0, Input: []byte("x")}}, 0, func(_ context.Context, in []byte) (any, error) {
		return len(in), nil
	})
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Value)
}
