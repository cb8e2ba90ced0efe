package normalize

import (
	"testing"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
	"github.com/nshkrdotcom/jsonremedy/internal/option"
)

// FuzzL3Scanner asserts that the single-pass rune scanner never panics
// and never reports a position outside the rune slice it was given,
// regardless of how malformed the input is — L3 runs on text L2 has
// already bracket-balanced, but makes no assumption about quoting or
// literal well-formedness.
func FuzzL3Scanner(f *testing.F) {
	f.Add(`{key: 'value', n: 01, b: True}`)
	f.Add(`{"a": .5, "b": 5., "c": +5}`)
	f.Add(`{a b c: "joined identifiers"}`)
	f.Add(`{"trailing": 1,}`)
	f.Add(``)
	f.Add(`}}}`)

	f.Fuzz(func(t *testing.T, input string) {
		ctx := action.New(option.Default())
		runes := []rune(input)
		res := New().Process(ctx, runes)

		for _, a := range ctx.Actions {
			if a.Position != nil && (*a.Position < 0 || *a.Position > len(runes)) {
				t.Fatalf("action %q reported out-of-range position %d for input of %d runes", a.Action, *a.Position, len(runes))
			}
		}
		_ = res
	})
}
