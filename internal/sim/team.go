package sim

import (
	"fmt"

	"github.com/udisondev/monbattle/internal/battle"
	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/model"
)

// team holds the creatures built for one run.
type team struct {
	sides [2][]*model.Creature
	refs  map[model.CreatureID]string
}

func (r *Runner) build(sc *Scenario) (*team, error) {
	t := &team{refs: make(map[model.CreatureID]string)}
	for side, def := range sc.Sides {
		for slot, cd := range def.Creatures {
			ref := fmt.Sprintf("%d.%d", side, slot)
			c, err := r.buildCreature(cd)
			if err != nil {
				return nil, fmt.Errorf("creature %s: %w", ref, err)
			}
			t.sides[side] = append(t.sides[side], c)
			t.refs[c.ID()] = ref
		}
	}
	return t, nil
}

func (r *Runner) buildCreature(cd CreatureDef) (*model.Creature, error) {
	species, ok := resolveSpecies(r.catalog, cd.Species)
	if !ok {
		return nil, fmt.Errorf("species %q: %w", cd.Species, ErrInvalidScenario)
	}
	c, err := model.NewCreature(species, max(cd.Level, data.MinLevel))
	if err != nil {
		return nil, err
	}
	c.SetName(cd.Nickname)

	for _, name := range cd.Moves {
		id, _ := resolveMove(r.catalog, name)
		m, ok := r.catalog.Move(id)
		if !ok {
			return nil, fmt.Errorf("move %q: %w", name, ErrInvalidScenario)
		}
		c.TryLearnMove(m.ID, m.MaxPP)
	}

	if cd.Damage > 0 {
		c.ModifyHP(-cd.Damage)
	}
	return c, nil
}

func (t *team) creature(sc *Scenario, ref string) (*model.Creature, error) {
	side, slot, err := sc.parseRef(ref)
	if err != nil {
		return nil, err
	}
	return t.sides[side][slot], nil
}

// actions resolves a scripted turn into battle actions.
func (t *team) actions(cat NamedCatalog, sc *Scenario, turn TurnDef) ([]battle.Action, error) {
	out := make([]battle.Action, 0, len(turn.Actions))
	for i, a := range turn.Actions {
		if a.Kind == "pass" {
			out = append(out, battle.Pass())
			continue
		}

		actor, err := t.creature(sc, a.Actor)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if a.Kind == "use_item" {
			out = append(out, battle.UseItem(actor.ID(), data.ItemID(a.Item)))
			continue
		}

		target, err := t.creature(sc, a.Target)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		switch a.Kind {
		case "attack":
			move, ok := resolveMove(cat, a.Move)
			if !ok {
				return nil, fmt.Errorf("action %d: move %q: %w", i, a.Move, ErrInvalidScenario)
			}
			out = append(out, battle.Attack(actor.ID(), target.ID(), move))
		case "strike":
			out = append(out, battle.Strike(actor.ID(), target.ID(), a.Amount))
		case "heal":
			out = append(out, battle.Heal(actor.ID(), target.ID(), a.Amount))
		case "switch":
			out = append(out, battle.Switch(actor.ID(), target.ID()))
		default:
			return nil, fmt.Errorf("action %d: kind %q: %w", i, a.Kind, ErrInvalidScenario)
		}
	}
	return out, nil
}

func (t *team) snapshot() []CreatureState {
	var out []CreatureState
	for _, side := range t.sides {
		for _, c := range side {
			st := CreatureState{
				Ref:   t.refs[c.ID()],
				Name:  c.Name(),
				Level: c.Level(),
				Exp:   c.Experience(),
				HP:    c.CurrentHP(),
				MaxHP: c.MaxHP(),
			}
			for _, m := range c.Moves() {
				if m != nil {
					st.Moves = append(st.Moves, *m)
				}
			}
			out = append(out, st)
		}
	}
	return out
}
