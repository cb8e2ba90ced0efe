package action

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

func TestLogAndLogSimple(t *testing.T) {
	ctx := New(option.Default())
	ctx.LogSimple(ContentCleaning, "did a thing")
	pos := 3
	orig := "x"
	repl := "y"
	ctx.Log(StructuralRepair, "did another thing", &pos, &orig, &repl)

	assert.Len(t, ctx.Actions, 2)
	assert.Equal(t, ContentCleaning, ctx.Actions[0].Stage)
	assert.Nil(t, ctx.Actions[0].Position)
	assert.Equal(t, StructuralRepair, ctx.Actions[1].Stage)
	assert.Equal(t, 3, *ctx.Actions[1].Position)
}

func TestNewContextStartsEmpty(t *testing.T) {
	ctx := New(option.Default())
	assert.Empty(t, ctx.Actions)
	assert.NotNil(t, ctx.Metadata)
}
