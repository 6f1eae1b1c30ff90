package battle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/model"
	"github.com/udisondev/monbattle/internal/testutil"
)

func learn(t *testing.T, cat data.Catalog, c *model.Creature, moves ...data.MoveID) {
	t.Helper()
	for _, id := range moves {
		m, ok := cat.Move(id)
		require.True(t, ok, "move %d", id)
		require.Equal(t, model.Learned, c.TryLearnMove(m.ID, m.MaxPP))
	}
}

func quiet() Option {
	return WithReporter(ReporterFunc(func(Event) {}))
}

func TestAttack_Damage(t *testing.T) {
	tests := []struct {
		name     string
		defender data.SpeciesID
		move     data.MoveID
		want     uint16
	}{
		{"super effective with STAB", testutil.SpeciesBulby, testutil.MoveEmber, 120},
		{"neutral without STAB", testutil.SpeciesSquirty, testutil.MoveTackle, 40},
		{"resisted with STAB", testutil.SpeciesSquirty, testutil.MoveEmber, 30},
		{"dual type cancels", testutil.SpeciesLotus, testutil.MoveEmber, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := testutil.Catalog()
			attacker := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
			defender := newTestCreature(t, cat, tt.defender, 50)
			learn(t, cat, attacker, testutil.MoveTackle, testutil.MoveEmber)

			b := NewDuel(attacker, defender, WithCatalog(cat), quiet())
			events, err := b.PlayTurn(Attack(attacker.ID(), defender.ID(), tt.move))
			require.NoError(t, err)

			require.NotEmpty(t, events)
			assert.Equal(t, DamageEvent(attacker.ID(), defender.ID(), tt.want), events[0])

			wantHP := max(defender.MaxHP()-int(tt.want), 0)
			assert.Equal(t, wantHP, defender.CurrentHP())
		})
	}
}

func TestAttack_SpendsPP(t *testing.T) {
	cat := testutil.Catalog()
	attacker := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
	defender := newTestCreature(t, cat, testutil.SpeciesLotus, 50)
	learn(t, cat, attacker, testutil.MoveSpark)

	b := NewDuel(attacker, defender, WithCatalog(cat), quiet())
	for range 2 {
		events, err := b.PlayTurn(Attack(attacker.ID(), defender.ID(), testutil.MoveSpark))
		require.NoError(t, err)
		require.NotEmpty(t, events)
		assert.Equal(t, DamageEvent(attacker.ID(), defender.ID(), 65), events[0])
	}
	hp := defender.CurrentHP()

	events, err := b.PlayTurn(Attack(attacker.ID(), defender.ID(), testutil.MoveSpark))
	require.NoError(t, err)
	assert.Equal(t, []Event{CustomEvent("Charmy has no PP left for Spark")}, events)
	assert.Equal(t, hp, defender.CurrentHP())

	slot, _ := attacker.Slot(0)
	assert.Equal(t, model.MovePP{Current: 0, Max: 2}, slot.PP)
}

func TestAttack_NoEffect(t *testing.T) {
	cat := testutil.Catalog()
	attacker := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
	defender := newTestCreature(t, cat, testutil.SpeciesSquirty, 5)
	learn(t, cat, attacker, testutil.MoveSplash)

	tests := []struct {
		name string
		move data.MoveID
		want Event
	}{
		{"zero power misses", testutil.MoveSplash, MissEvent(attacker.ID(), defender.ID())},
		{"unknown move misses", 999, MissEvent(attacker.ID(), defender.ID())},
		{"move not learned", testutil.MoveWaterGun, CustomEvent("Charmy does not know Water Gun")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewDuel(attacker, defender, WithCatalog(cat), quiet())
			events, err := b.PlayTurn(Attack(attacker.ID(), defender.ID(), tt.move))
			require.NoError(t, err)
			assert.Equal(t, []Event{tt.want}, events)
			assert.Equal(t, defender.MaxHP(), defender.CurrentHP())
		})
	}

	slot, _ := attacker.Slot(0)
	assert.Equal(t, uint8(39), slot.PP.Current, "a zero-damage move still costs PP")
}

func TestAttack_Ignored(t *testing.T) {
	cat := testutil.Catalog()
	attacker := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
	defender := newTestCreature(t, cat, testutil.SpeciesSquirty, 5)
	learn(t, cat, attacker, testutil.MoveTackle)

	b := NewDuel(attacker, defender, WithCatalog(cat), quiet())

	events, err := b.PlayTurn(Attack(model.NewCreatureID(), defender.ID(), testutil.MoveTackle))
	require.NoError(t, err)
	assert.Empty(t, events, "unknown attacker")

	events, err = b.PlayTurn(Attack(attacker.ID(), model.NewCreatureID(), testutil.MoveTackle))
	require.NoError(t, err)
	assert.Empty(t, events, "unknown target")

	attacker.ModifyHP(-attacker.MaxHP())
	events, err = b.PlayTurn(Attack(attacker.ID(), defender.ID(), testutil.MoveTackle))
	require.NoError(t, err)
	assert.Empty(t, events, "fainted attacker")

	slot, _ := attacker.Slot(0)
	assert.Equal(t, slot.PP.Max, slot.PP.Current)
}

func TestAttack_WithoutCatalogMisses(t *testing.T) {
	cat := testutil.Catalog()
	attacker := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
	defender := newTestCreature(t, cat, testutil.SpeciesSquirty, 5)
	learn(t, cat, attacker, testutil.MoveTackle)

	b := NewDuel(attacker, defender, quiet())
	events, err := b.PlayTurn(Attack(attacker.ID(), defender.ID(), testutil.MoveTackle))
	require.NoError(t, err)
	assert.Equal(t, []Event{MissEvent(attacker.ID(), defender.ID())}, events)
}

func TestAttack_CustomDamageFormula(t *testing.T) {
	cat := testutil.Catalog()
	attacker := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
	defender := newTestCreature(t, cat, testutil.SpeciesLotus, 50)
	learn(t, cat, attacker, testutil.MoveTackle)

	halve := func(p float64) int { return int(p / 2) }
	b := NewDuel(attacker, defender, WithCatalog(cat), WithDamageFormula(halve), quiet())

	events, err := b.PlayTurn(Attack(attacker.ID(), defender.ID(), testutil.MoveTackle))
	require.NoError(t, err)
	assert.Equal(t, []Event{DamageEvent(attacker.ID(), defender.ID(), 20)}, events)
}

func TestStrikeAndHeal(t *testing.T) {
	b, c1, c2, _ := newTestDuel(t)

	events, err := b.PlayTurn(
		Strike(c1.ID(), c2.ID(), 12),
		Heal(c2.ID(), c2.ID(), 5),
		Pass(),
	)
	require.NoError(t, err)

	assert.Equal(t, []Event{
		DamageEvent(c1.ID(), c2.ID(), 12),
		HealEvent(c2.ID(), c2.ID(), 5),
	}, events)
	assert.Equal(t, 23, c2.CurrentHP())
}

func TestSwitch(t *testing.T) {
	cat := testutil.Catalog()
	lead := newTestCreature(t, cat, testutil.SpeciesTestmon, 5)
	bench := newTestCreature(t, cat, testutil.SpeciesBulby, 5)
	down := newTestCreature(t, cat, testutil.SpeciesCharmy, 5)
	down.ModifyHP(-down.MaxHP())
	foe := newTestCreature(t, cat, testutil.SpeciesSquirty, 5)

	b := New(model.NewParty(lead, bench, down), model.NewParty(foe), quiet())

	events, err := b.PlayTurn(Switch(lead.ID(), bench.ID()))
	require.NoError(t, err)
	assert.Equal(t, []Event{CustomEvent("Testmon switched out for Bulby")}, events)
	assert.Same(t, bench, b.Active(Side1))

	tests := []struct {
		name    string
		out, in model.CreatureID
	}{
		{"fainted replacement", bench.ID(), down.ID()},
		{"other side", bench.ID(), foe.ID()},
		{"unknown creature", model.NewCreatureID(), lead.ID()},
		{"same creature", bench.ID(), bench.ID()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := b.PlayTurn(Switch(tt.out, tt.in))
			require.NoError(t, err)
			assert.Empty(t, events)
			assert.Same(t, bench, b.Active(Side1))
		})
	}
}

func TestSwitch_DuelIgnored(t *testing.T) {
	b, c1, c2, _ := newTestDuel(t)
	events, err := b.PlayTurn(Switch(c1.ID(), c2.ID()))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestUseItem(t *testing.T) {
	b, c1, c2, _ := newTestDuel(t)

	events, err := b.PlayTurn(UseItem(c1.ID(), 7))
	require.NoError(t, err)
	assert.Equal(t, []Event{CustomEvent("Testmon used item 7: no effect")}, events)

	c2.ModifyHP(-10)
	potion := func(user *model.Creature, item data.ItemID) []Event {
		return []Event{
			CustomEvent(fmt.Sprintf("%s drinks potion %d", user.Name(), item)),
			HealEvent(user.ID(), c2.ID(), 10),
		}
	}
	b = NewDuel(c1, c2, WithItemHook(potion), quiet())
	events, err = b.PlayTurn(UseItem(c1.ID(), 3), UseItem(model.NewCreatureID(), 3))
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, 30, c2.CurrentHP())
}

func TestSubmitTurn_Errors(t *testing.T) {
	b, c1, c2, _ := newTestDuel(t)

	err := b.SubmitTurn(NewTurn(2, Strike(c1.ID(), c2.ID(), 1)))
	assert.ErrorIs(t, err, ErrTurnMismatch)
	assert.Zero(t, b.Pending(), "rejected turn queues nothing")

	turn := NewTurn(1)
	turn.Add(Strike(c1.ID(), c2.ID(), 1))
	require.NoError(t, b.SubmitTurn(turn))
	assert.Equal(t, 1, b.Pending())

	b.Finish()
	assert.ErrorIs(t, b.SubmitTurn(NewTurn(1)), ErrBattleFinished)

	_, err = b.PlayTurn(Pass())
	assert.ErrorIs(t, err, ErrBattleFinished)
}

func TestPlayTurn_Phases(t *testing.T) {
	b, c1, c2, _ := newTestDuel(t)

	_, err := b.PlayTurn(Strike(c1.ID(), c2.ID(), 1))
	require.NoError(t, err)
	assert.Equal(t, StateStartTurn, b.State())
	assert.Equal(t, uint32(2), b.Turn())

	b.AdvanceState()
	_, err = b.PlayTurn(Strike(c1.ID(), c2.ID(), 1))
	require.NoError(t, err, "SelectActions is a valid starting phase")
	assert.Equal(t, uint32(3), b.Turn())

	b.AdvanceState()
	b.AdvanceState()
	_, err = b.PlayTurn(Pass())
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.Equal(t, StateResolveActions, b.State())
	assert.Equal(t, 28, c2.CurrentHP())
}
