package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

func process(t *testing.T, input string) (string, *action.Context) {
	t.Helper()
	ctx := action.New(option.Default())
	res := New().Process(ctx, []rune(input))
	require.Equal(t, pipeline.StatusContinue, res.Status)
	return string(res.Runes), ctx
}

func TestClean_StripsFencedCodeBlock(t *testing.T) {
	out, ctx := process(t, "```json\n{\"a\":1}\n```")
	assert.Equal(t, `{"a":1}`, out)
	assert.NotEmpty(t, ctx.Actions)
}

func TestClean_StripsLineComments(t *testing.T) {
	out, _ := process(t, "{\"a\":1} // trailing note")
	assert.Equal(t, `{"a":1}`, out)
}

func TestClean_StripsBlockComments(t *testing.T) {
	out, _ := process(t, `{"a": /* inline */ 1}`)
	assert.Equal(t, `{"a":  1}`, out)
}

func TestClean_UnwrapsHTMLPre(t *testing.T) {
	out, _ := process(t, `<pre>{"a":1}</pre>`)
	assert.Equal(t, `{"a":1}`, out)
}

func TestClean_DiscardsSurroundingProse(t *testing.T) {
	out, _ := process(t, `Here is the JSON you asked for: {"a":1} Hope that helps!`)
	assert.Equal(t, `{"a":1}`, out)
}

func TestClean_LeavesCommentLikeStringContentAlone(t *testing.T) {
	out, _ := process(t, `{"url": "http://example.com"}`)
	assert.Equal(t, `{"url": "http://example.com"}`, out)
}
