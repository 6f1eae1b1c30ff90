// Package sim plays scripted battle scenarios against a catalog.
package sim

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/monbattle/internal/battle"
	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/model"
)

// NamedCatalog is a catalog that also resolves display names.
type NamedCatalog interface {
	data.Catalog
	SpeciesByName(name string) (*data.Species, bool)
	MoveByName(name string) (*data.Move, bool)
}

// Runner plays scenarios. It is safe for concurrent use as long as the
// catalog is not mutated: every scenario gets its own creatures and battle.
type Runner struct {
	catalog    NamedCatalog
	manager    *battle.Manager
	battleOpts []battle.Option
	levelOpts  []model.LevelOption
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithBattleOptions adds options to every battle the runner creates.
func WithBattleOptions(opts ...battle.Option) RunnerOption {
	return func(r *Runner) {
		r.battleOpts = append(r.battleOpts, opts...)
	}
}

// WithLevelOptions is passed to every experience award.
func WithLevelOptions(opts ...model.LevelOption) RunnerOption {
	return func(r *Runner) {
		r.levelOpts = append(r.levelOpts, opts...)
	}
}

// WithManager registers running battles in m instead of a private manager.
func WithManager(m *battle.Manager) RunnerOption {
	return func(r *Runner) {
		if m != nil {
			r.manager = m
		}
	}
}

func NewRunner(cat NamedCatalog, opts ...RunnerOption) *Runner {
	r := &Runner{
		catalog: cat,
		manager: battle.NewManager(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Learned is a move outcome of an experience award.
type Learned struct {
	Ref     string
	Outcome combat.LearnOutcome
}

// CreatureState is a creature snapshot taken after the last turn.
type CreatureState struct {
	Ref   string
	Name  string
	Level data.Level
	Exp   int64
	HP    int
	MaxHP int
	Moves []model.CreatureMove
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario string
	Turns    uint32
	Over     bool
	Winner   int
	Events   []battle.Event
	Learned  []Learned
	Final    []CreatureState
	Digest   string

	refs map[model.CreatureID]string
}

// Ref returns the scenario ref of a creature id, or "-" for ids that are not
// part of the scenario (including the zero id).
func (r *Result) Ref(id model.CreatureID) string {
	if ref, ok := r.refs[id]; ok {
		return ref
	}
	return "-"
}

// Run plays sc turn by turn until the script ends or a side is wiped out,
// in which case the battle is finished and the remaining turns are skipped.
// ctx is checked between turns.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	t, err := r.build(sc)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	var b *battle.Battle
	if sc.Mode == ModeDuel {
		b = battle.NewDuel(t.sides[0][0], t.sides[1][0], r.battleOptions()...)
	} else {
		b = battle.New(model.NewParty(t.sides[0]...), model.NewParty(t.sides[1]...), r.battleOptions()...)
	}
	id := r.manager.Register(b)
	defer r.manager.Remove(id)

	res := &Result{
		Scenario: sc.Name,
		Winner:   battle.NoSide,
		refs:     t.refs,
	}

turns:
	for i, turn := range sc.Turns {
		actions, err := t.actions(r.catalog, sc, turn)
		if err != nil {
			return nil, fmt.Errorf("scenario %s turn %d: %w", sc.Name, i, err)
		}

		for range max(turn.Repeat, 1) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			events, err := b.PlayTurn(actions...)
			if err != nil {
				return nil, fmt.Errorf("scenario %s turn %d: %w", sc.Name, b.Turn(), err)
			}
			res.Turns++
			res.Events = append(res.Events, events...)

			if sc.ExpOnFaint > 0 {
				res.Learned = append(res.Learned, r.awardFaints(b, t, events, sc.ExpOnFaint)...)
			}

			if over, winner := battle.PartyWipe(b); over {
				b.Finish()
				res.Over, res.Winner = true, winner
				break turns
			}
		}
	}

	res.Final = t.snapshot()
	res.Digest = Digest(res)

	slog.Info("scenario finished",
		"scenario", sc.Name,
		"turns", res.Turns,
		"over", res.Over,
		"winner", res.Winner,
		"events", len(res.Events))
	return res, nil
}

// RunAll plays scenarios on up to parallelism goroutines. Results keep the
// order of scenarios. The first error cancels the remaining runs.
func (r *Runner) RunAll(ctx context.Context, scenarios []*Scenario, parallelism int) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallelism, 1))

	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := r.Run(gctx, sc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Running returns the number of battles in progress.
func (r *Runner) Running() int {
	return r.manager.Count()
}

func (r *Runner) battleOptions() []battle.Option {
	opts := make([]battle.Option, 0, len(r.battleOpts)+1)
	opts = append(opts, battle.WithCatalog(r.catalog))
	return append(opts, r.battleOpts...)
}

// awardFaints gives exp to the opposing active creature for every Fainted event.
func (r *Runner) awardFaints(b *battle.Battle, t *team, events []battle.Event, exp int64) []Learned {
	var learned []Learned
	for _, ev := range events {
		if ev.Kind != battle.KindFainted {
			continue
		}
		side := b.SideOf(ev.Target)
		if side == battle.NoSide {
			continue
		}
		winner := b.Active(1 - side)
		if winner == nil {
			continue
		}
		for _, o := range combat.AwardExperience(winner, exp, r.catalog, r.levelOpts...) {
			learned = append(learned, Learned{Ref: t.refs[winner.ID()], Outcome: o})
		}
	}
	return learned
}
