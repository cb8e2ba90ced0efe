// Package quality scores a completed repair's confidence, surfaced
// only when Options.Debug is set, as RepairWithDebug does (spec.md never defines
// a minimum-quality Non-goal, so this never gates success/failure).
// Grounded on internal/contract/quality_gate.go's QualityGateRunner
// scoring shape (an aggregate 0-100 Score plus a Details breakdown).
package quality

import (
	"strings"

	"github.com/nshkrdotcom/jsonremedy/internal/action"
)

// Score is a 0-100 confidence rating for one repair, plus the inputs
// that produced it.
type Score struct {
	Value              int
	ActionCount        int
	FabricationCount   int
	ChangeRatioPercent int
}

// Compute derives a confidence score from the number of recorded
// actions relative to the input length and from how many of them were
// L5 fabrications. The change ratio is actions*100/inputRunes (integer
// division, capped at 100) and is subtracted from 100; each action whose
// text mentions "fabricated" costs a further 10 points, so fabrications
// (L5 inventing structure the input never had) weigh more than
// mechanical normalization (quoting a key, adding a comma).
func Compute(inputRunes int, actions []action.Record) Score {
	fabrications := 0
	for _, a := range actions {
		if strings.Contains(a.Action, "fabricated") {
			fabrications++
		}
	}

	changeRatio := 0
	if inputRunes > 0 {
		changeRatio = (len(actions) * 100) / inputRunes
		if changeRatio > 100 {
			changeRatio = 100
		}
	}

	value := 100 - changeRatio - fabrications*10
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	return Score{
		Value:              value,
		ActionCount:        len(actions),
		FabricationCount:   fabrications,
		ChangeRatioPercent: changeRatio,
	}
}
