package structural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/pipeline"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

func run(t *testing.T, opts option.Options, input string) (string, *action.Context) {
	t.Helper()
	ctx := action.New(opts)
	res := New().Process(ctx, []rune(input))
	require.Equal(t, pipeline.StatusContinue, res.Status)
	return string(res.Runes), ctx
}

func TestStructural_AddsMissingClosers(t *testing.T) {
	opts := option.Default()
	out, ctx := run(t, opts, `{"a": 1, "b": [1, 2, 3`)
	assert.Equal(t, `{"a": 1, "b": [1, 2, 3]}`, out)
	assert.NotEmpty(t, ctx.Actions)
}

func TestStructural_DropsExtraCloser(t *testing.T) {
	opts := option.Default()
	out, _ := run(t, opts, `{"a": 1}}`)
	assert.Equal(t, `{"a": 1}`, out)
}

func TestStructural_FixesTypeMismatchedCloser(t *testing.T) {
	opts := option.Default()
	out, _ := run(t, opts, `{"a": [1, 2}`)
	assert.Equal(t, `{"a": [1, 2]}`, out)
}

func TestStructural_LeavesValidJSONAlone(t *testing.T) {
	opts := option.Default()
	out, ctx := run(t, opts, `{"a":1,"b":2}`)
	assert.Equal(t, `{"a":1,"b":2}`, out)
	assert.Empty(t, ctx.Actions)
}

func TestStructural_WrapsConcatenatedSiblings(t *testing.T) {
	opts := option.Default()
	out, _ := run(t, opts, `{"a":1}{"b":2}`)
	assert.Equal(t, `[{"a":1},{"b":2}]`, out)
}

func TestStructural_NestingDepthExceeded(t *testing.T) {
	opts := option.Default()
	opts.MaxNestingDepth = 2
	ctx := action.New(opts)
	res := New().Process(ctx, []rune(`[[[1]]]`))
	require.Equal(t, pipeline.StatusError, res.Status)
	assert.Equal(t, action.NestingDepthExceeded, res.Reason)
}

func TestStructural_UnclosedStringStrictErrors(t *testing.T) {
	opts := option.Default()
	opts.Strictness = option.Strict
	ctx := action.New(opts)
	res := New().Process(ctx, []rune(`{"a": "oops`))
	require.Equal(t, pipeline.StatusError, res.Status)
	assert.Equal(t, action.UnclosedString, res.Reason)
}

func TestStructural_StringContentsNeverTouched(t *testing.T) {
	opts := option.Default()
	out, _ := run(t, opts, `{"note": "contains } and ] inside"}`)
	assert.Equal(t, `{"note": "contains } and ] inside"}`, out)
}

// isInsideStringAt reports whether pos lies inside a string body of
// input, using the same delimiter/escape rules the scanner itself
// follows.
func isInsideStringAt(input []rune, pos int) bool {
	inString := false
	var delim rune
	escaped := false
	for i := 0; i < pos && i < len(input); i++ {
		c := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == delim:
				inString = false
			}
			continue
		}
		if c == '"' || c == '\'' {
			inString = true
			delim = c
		}
	}
	return inString
}

// FuzzStructural_PositionsOutsideStrings asserts spec.md §8's
// string-body inviolability invariant for this stage's own
// position-tagged action: "removed extra closing delimiter" must
// never be logged at a position inside a string.
func FuzzStructural_PositionsOutsideStrings(f *testing.F) {
	f.Add(`{"a":1}}`)
	f.Add(`[1,2,3]]`)
	f.Add(`{"msg":"a}b"}}`)
	f.Add(`[{"a":1}]]]`)

	f.Fuzz(func(t *testing.T, input string) {
		runes := []rune(input)
		ctx := action.New(option.Default())
		res := New().Process(ctx, runes)
		if res.Status == pipeline.StatusError {
			return
		}
		for _, a := range ctx.Actions {
			if a.Position == nil {
				continue
			}
			if isInsideStringAt(runes, *a.Position) {
				t.Fatalf("action %q at position %d lies inside a string body", a.Action, *a.Position)
			}
		}
	})
}
