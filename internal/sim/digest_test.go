package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/monbattle/internal/battle"
	"github.com/udisondev/monbattle/internal/model"
)

func resultWithFreshIDs() *Result {
	a, b := model.NewCreatureID(), model.NewCreatureID()
	return &Result{
		Scenario: "digest",
		Turns:    1,
		Events: []battle.Event{
			battle.DamageEvent(a, b, 12),
			battle.CustomEvent("spores fill the air"),
		},
		Final: []CreatureState{
			{Ref: "0.0", Name: "Bulby", Level: 5, Exp: 100, HP: 50, MaxHP: 50},
			{Ref: "1.0", Name: "Charmy", Level: 5, Exp: 135, HP: 27, MaxHP: 39},
		},
		refs: map[model.CreatureID]string{a: "0.0", b: "1.0"},
	}
}

func TestDigest_IgnoresCreatureIDs(t *testing.T) {
	assert.Equal(t, Digest(resultWithFreshIDs()), Digest(resultWithFreshIDs()))
}

func TestDigest_SensitiveToState(t *testing.T) {
	base := Digest(resultWithFreshIDs())

	res := resultWithFreshIDs()
	res.Final[1].HP = 26
	assert.NotEqual(t, base, Digest(res))

	res = resultWithFreshIDs()
	res.Events[0].Amount = 13
	assert.NotEqual(t, base, Digest(res))

	res = resultWithFreshIDs()
	res.Events[0], res.Events[1] = res.Events[1], res.Events[0]
	assert.NotEqual(t, base, Digest(res), "event order matters")
}

func TestResult_Ref(t *testing.T) {
	res := resultWithFreshIDs()
	assert.Equal(t, "-", res.Ref(model.CreatureID{}))
	assert.Equal(t, "-", res.Ref(model.NewCreatureID()))
	assert.Equal(t, "0.0", res.Ref(res.Events[0].Source))
}
