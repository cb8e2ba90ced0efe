package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
)

func TestCompute_NoActionsIsPerfectScore(t *testing.T) {
	s := Compute(100, nil)
	assert.Equal(t, 100, s.Value)
	assert.Equal(t, 0, s.FabricationCount)
}

func TestCompute_FabricationsLowerScoreMoreThanNormalization(t *testing.T) {
	normalize := []action.Record{{Stage: action.SyntaxNormalization, Action: "quoted unquoted key"}}
	fabricate := []action.Record{{Stage: action.TolerantParsing, Action: "fabricated missing closing brace at end of input"}}

	a := Compute(1000, normalize)
	b := Compute(1000, fabricate)
	assert.Greater(t, a.Value, b.Value)
	assert.Equal(t, 1, b.FabricationCount)
}

func TestCompute_ZeroInputLengthDoesNotDivideByZero(t *testing.T) {
	assert.NotPanics(t, func() {
		Compute(0, []action.Record{{Action: "x"}})
	})
}
