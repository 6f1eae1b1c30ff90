package combat

import (
	"math"

	"github.com/udisondev/monbattle/internal/data"
)

// STABMultiplier is applied when the move type is one of the user's types.
const STABMultiplier = 1.5

// EffectivePower returns move power scaled by type matchups against every
// defender type, and by STAB if the move shares a type with the user.
//
// Fire move, power 90, user Normal, defender Grass: 90 × 2.0 = 180.
// Same move used by a Fire creature: 180 × 1.5 = 270.
func EffectivePower(move *data.Move, userTypes, defenderTypes []data.CreatureType) float64 {
	power := float64(move.Power) * data.CombinedMultiplier(move.Type, defenderTypes)
	for _, t := range userTypes {
		if t == move.Type {
			power *= STABMultiplier
			break
		}
	}
	return power
}

// DamageFormula converts effective power into an HP amount.
// Implementations must return a non-negative value.
type DamageFormula func(effectivePower float64) int

// TruncatedPower is the default DamageFormula: effective power rounded
// toward zero. Negative and NaN inputs yield 0.
func TruncatedPower(effectivePower float64) int {
	if math.IsNaN(effectivePower) || effectivePower <= 0 {
		return 0
	}
	return int(math.Trunc(effectivePower))
}

// MoveDamage runs EffectivePower through formula.
// A nil formula means TruncatedPower.
func MoveDamage(move *data.Move, userTypes, defenderTypes []data.CreatureType, formula DamageFormula) int {
	if formula == nil {
		formula = TruncatedPower
	}
	return max(formula(EffectivePower(move, userTypes, defenderTypes)), 0)
}
