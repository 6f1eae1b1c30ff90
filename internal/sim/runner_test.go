package sim

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/battle"
	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/model"
	"github.com/udisondev/monbattle/internal/testutil"
)

func mustScenario(t *testing.T, raw string) *Scenario {
	t.Helper()
	sc, err := ParseScenario([]byte(raw))
	require.NoError(t, err)
	return sc
}

func quietRunner(opts ...RunnerOption) *Runner {
	opts = append(opts, WithBattleOptions(battle.WithReporter(battle.ReporterFunc(func(battle.Event) {}))))
	return NewRunner(testutil.Catalog(), opts...)
}

func TestRun_Knockout(t *testing.T) {
	r := quietRunner()
	res, err := r.Run(context.Background(), mustScenario(t, knockoutYAML))
	require.NoError(t, err)

	assert.True(t, res.Over)
	assert.Equal(t, battle.Side1, res.Winner)
	assert.Equal(t, uint32(1), res.Turns, "turns after the wipe are skipped")

	require.Len(t, res.Events, 2)
	assert.Equal(t, battle.KindDamage, res.Events[0].Kind)
	assert.Equal(t, uint16(120), res.Events[0].Amount)
	assert.Equal(t, "0.0", res.Ref(res.Events[0].Source))
	assert.Equal(t, "1.0", res.Ref(res.Events[0].Target))
	assert.Equal(t, battle.KindFainted, res.Events[1].Kind)

	require.Len(t, res.Final, 2)
	assert.Equal(t, "Charmy", res.Final[0].Name)
	assert.Equal(t, []model.CreatureMove{
		{MoveID: testutil.MoveEmber, PP: model.MovePP{Current: 24, Max: 25}},
		{MoveID: testutil.MoveTackle, PP: model.MovePP{Current: 35, Max: 35}},
	}, res.Final[0].Moves)
	assert.Equal(t, 0, res.Final[1].HP)
	assert.Len(t, res.Digest, 64)
	assert.Zero(t, r.Running())
}

func TestRun_ExperienceOnFaint(t *testing.T) {
	sc := mustScenario(t, `
name: grind
exp_on_faint: 57
sides:
  - creatures:
      - {species: Charmy, level: 6, nickname: Blaze, moves: [Tackle]}
  - creatures:
      - {species: Bulby, level: 5}
turns:
  - repeat: 3
    actions:
      - {kind: attack, actor: "0.0", target: "1.0", move: Tackle}
`)
	res, err := quietRunner().Run(context.Background(), sc)
	require.NoError(t, err)

	assert.Equal(t, uint32(2), res.Turns)
	assert.Equal(t, []Learned{{
		Ref:     "0.0",
		Outcome: combat.LearnOutcome{Level: 7, MoveID: testutil.MoveEmber, Result: model.Learned},
	}}, res.Learned)

	blaze := res.Final[0]
	assert.Equal(t, "Blaze", blaze.Name)
	assert.Equal(t, data.Level(7), blaze.Level)
	assert.Equal(t, int64(236), blaze.Exp)
	assert.Len(t, blaze.Moves, 2)
}

func TestRun_Duel(t *testing.T) {
	sc := mustScenario(t, `
mode: duel
sides:
  - creatures: [{species: Testmon, level: 10}]
  - creatures: [{species: Testmon, level: 10, damage: 25}]
turns:
  - actions:
      - {kind: strike, actor: "1.0", target: "0.0", amount: 10}
      - {kind: heal, actor: "0.0", target: "0.0", amount: 4}
      - {kind: attack, actor: "0.0", target: "1.0", move: "999"}
      - {kind: use_item, actor: "1.0", item: 2}
  - actions:
      - {kind: strike, actor: "0.0", target: "1.0", amount: 5}
`)
	res, err := quietRunner().Run(context.Background(), sc)
	require.NoError(t, err)

	assert.True(t, res.Over)
	assert.Equal(t, battle.Side1, res.Winner)
	assert.Equal(t, uint32(2), res.Turns)

	kinds := make([]battle.Kind, 0, len(res.Events))
	for _, ev := range res.Events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []battle.Kind{
		battle.KindDamage, battle.KindHeal, battle.KindMiss, battle.KindCustom,
		battle.KindDamage, battle.KindFainted,
	}, kinds)
	assert.Equal(t, 24, res.Final[0].HP)
}

func TestRun_Switch(t *testing.T) {
	sc := mustScenario(t, `
sides:
  - creatures: [{species: Testmon}, {species: Bulby, level: 5}]
  - creatures: [{species: Charmy, level: 5}]
turns:
  - actions:
      - {kind: switch, actor: "0.0", target: "0.1"}
      - {kind: strike, actor: "1.0", target: "0.0", amount: 99}
`)
	res, err := quietRunner().Run(context.Background(), sc)
	require.NoError(t, err)

	assert.False(t, res.Over, "Bulby is still standing")
	assert.Equal(t, battle.CustomEvent("Testmon switched out for Bulby"), res.Events[0])
	assert.Equal(t, 0, res.Final[0].HP)
	assert.Equal(t, 50, res.Final[1].HP)
}

func TestRun_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown species", `
sides:
  - creatures: [{species: Missingno}]
  - creatures: [{species: Bulby}]
`},
		{"unknown move", `
sides:
  - creatures: [{species: Charmy, moves: [Hyper Beam]}]
  - creatures: [{species: Bulby}]
`},
		{"unknown attack move name", `
sides:
  - creatures: [{species: Charmy}]
  - creatures: [{species: Bulby}]
turns:
  - actions: [{kind: attack, actor: "0.0", target: "1.0", move: Hyper Beam}]
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner().Run(context.Background(), mustScenario(t, tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}
}

func TestRun_LevelOutOfRange(t *testing.T) {
	sc := mustScenario(t, `
sides:
  - creatures: [{species: Charmy, level: 101}]
  - creatures: [{species: Bulby}]
`)
	_, err := quietRunner().Run(context.Background(), sc)
	assert.ErrorIs(t, err, data.ErrLevelOutOfRange)
}

func TestRun_SpeciesByID(t *testing.T) {
	sc := mustScenario(t, `
sides:
  - creatures: [{species: "4"}]
  - creatures: [{species: bulby}]
`)
	res, err := quietRunner().Run(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, "Testmon", res.Final[0].Name)
	assert.Equal(t, "Bulby", res.Final[1].Name)
	assert.False(t, res.Over)
	assert.Equal(t, battle.NoSide, res.Winner)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().Run(ctx, mustScenario(t, knockoutYAML))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Deterministic(t *testing.T) {
	r := quietRunner()

	first, err := r.Run(context.Background(), mustScenario(t, knockoutYAML))
	require.NoError(t, err)
	second, err := r.Run(context.Background(), mustScenario(t, knockoutYAML))
	require.NoError(t, err)
	assert.Equal(t, first.Digest, second.Digest)

	sc := mustScenario(t, knockoutYAML)
	sc.Sides[1].Creatures[0].Level = 6
	third, err := r.Run(context.Background(), sc)
	require.NoError(t, err)
	assert.NotEqual(t, first.Digest, third.Digest)
}

func TestRunAll(t *testing.T) {
	const n = 12
	scenarios := make([]*Scenario, n)
	for i := range scenarios {
		sc := mustScenario(t, knockoutYAML)
		sc.Name = fmt.Sprintf("run-%02d", i)
		scenarios[i] = sc
	}

	r := quietRunner()
	results, err := r.RunAll(context.Background(), scenarios, 4)
	require.NoError(t, err)
	require.Len(t, results, n)

	for i, res := range results {
		assert.Equal(t, scenarios[i].Name, res.Scenario)
		assert.Equal(t, results[0].Digest, res.Digest)
	}
	assert.Zero(t, r.Running())
}

func TestRunAll_SameScenarioTwice(t *testing.T) {
	sc := mustScenario(t, knockoutYAML)
	sc.Mode = ""

	results, err := quietRunner().RunAll(context.Background(), []*Scenario{sc, sc, sc, sc}, 4)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, res := range results {
		assert.Equal(t, results[0].Digest, res.Digest)
	}
	assert.Empty(t, sc.Mode, "running must not rewrite the scenario")
}

func TestRunAll_StopsOnError(t *testing.T) {
	broken := mustScenario(t, knockoutYAML)
	broken.Sides[0].Creatures[0].Species = "Missingno"

	scenarios := []*Scenario{mustScenario(t, knockoutYAML), broken, mustScenario(t, knockoutYAML)}
	_, err := quietRunner().RunAll(context.Background(), scenarios, 0)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestRunner_SharedManager(t *testing.T) {
	mgr := battle.NewManager()
	r := quietRunner(WithManager(mgr))

	_, err := r.Run(context.Background(), mustScenario(t, knockoutYAML))
	require.NoError(t, err)
	assert.Zero(t, mgr.Count(), "battles are removed when the run ends")
}
