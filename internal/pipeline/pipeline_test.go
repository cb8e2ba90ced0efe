package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

type upperStage struct{}

func (upperStage) Name() string { return "upper" }
func (upperStage) Process(ctx *action.Context, input []rune) Result {
	out := make([]rune, len(input))
	for i, r := range input {
		if r >= 'a' && r <= 'z' {
			r -= 32
		}
		out[i] = r
	}
	ctx.LogSimple(action.ContentCleaning, "uppercased")
	return Continue(out)
}

type terminalStage struct{}

func (terminalStage) Name() string { return "terminal" }
func (terminalStage) Process(ctx *action.Context, input []rune) Result {
	return OK(input, string(input))
}

func TestRun_ThreadsContinueResults(t *testing.T) {
	ctx := action.New(option.Default())
	res := Run([]Stage{upperStage{}, upperStage{}}, ctx, []rune("abc"))
	require.Equal(t, StatusContinue, res.Status)
	assert.Equal(t, "ABC", string(res.Runes))
	assert.Len(t, ctx.Actions, 2)
}

func TestRun_StopsAtErrorStage(t *testing.T) {
	ctx := action.New(option.Default())
	stages := []Stage{upperStage{}, failStage{}, upperStage{}}
	res := Run(stages, ctx, []rune("abc"))
	require.Equal(t, StatusError, res.Status)
	assert.Equal(t, action.Unrepairable, res.Reason)
	assert.Len(t, ctx.Actions, 1) // only the first upperStage ran
}

type failStage struct{}

func (failStage) Name() string { return "fail" }
func (failStage) Process(ctx *action.Context, input []rune) Result {
	return Err(action.Unrepairable)
}

func TestRun_EarlyExitOnOK(t *testing.T) {
	opts := option.Default()
	opts.EarlyExit = true
	ctx := action.New(opts)
	res := Run([]Stage{terminalStage{}, upperStage{}}, ctx, []rune("abc"))
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "abc", res.Value)
	assert.Empty(t, ctx.Actions)
}

func TestRun_ContinuesPastOKWhenEarlyExitDisabled(t *testing.T) {
	opts := option.Default()
	opts.EarlyExit = false
	ctx := action.New(opts)
	res := Run([]Stage{terminalStage{}, upperStage{}}, ctx, []rune("abc"))
	require.Equal(t, StatusContinue, res.Status)
	assert.Equal(t, "ABC", string(res.Runes))
}
