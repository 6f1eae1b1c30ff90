package battle

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/model"
)

var (
	ErrBattleFinished = errors.New("battle finished")
	ErrTurnMismatch   = errors.New("turn number mismatch")
	ErrWrongPhase     = errors.New("wrong battle phase")
)

// ActionKind tags an Action.
type ActionKind uint8

const (
	ActionAttack  ActionKind = iota // Actor uses Move on Target
	ActionStrike                    // Actor deals Amount raw damage to Target
	ActionHeal                      // Actor restores Amount HP to Target
	ActionSwitch                    // Actor swaps party slots with Target
	ActionUseItem                   // Actor uses Item
	ActionPass                      // nothing
)

func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionStrike:
		return "strike"
	case ActionHeal:
		return "heal"
	case ActionSwitch:
		return "switch"
	case ActionUseItem:
		return "use_item"
	case ActionPass:
		return "pass"
	}
	return fmt.Sprintf("ActionKind(%d)", k)
}

// Action is one already-decided choice for a turn.
type Action struct {
	Kind   ActionKind
	Actor  model.CreatureID
	Target model.CreatureID
	Move   data.MoveID
	Amount uint16
	Item   data.ItemID
}

func Attack(attacker, target model.CreatureID, move data.MoveID) Action {
	return Action{Kind: ActionAttack, Actor: attacker, Target: target, Move: move}
}

func Strike(attacker, target model.CreatureID, damage uint16) Action {
	return Action{Kind: ActionStrike, Actor: attacker, Target: target, Amount: damage}
}

func Heal(source, target model.CreatureID, amount uint16) Action {
	return Action{Kind: ActionHeal, Actor: source, Target: target, Amount: amount}
}

// Switch swaps the slots of out and in, which must share a party.
func Switch(out, in model.CreatureID) Action {
	return Action{Kind: ActionSwitch, Actor: out, Target: in}
}

func UseItem(user model.CreatureID, item data.ItemID) Action {
	return Action{Kind: ActionUseItem, Actor: user, Item: item}
}

func Pass() Action {
	return Action{Kind: ActionPass}
}

// Turn is the set of actions submitted for one turn number, applied in order.
type Turn struct {
	Number  uint32
	Actions []Action
}

func NewTurn(number uint32, actions ...Action) Turn {
	return Turn{Number: number, Actions: actions}
}

func (t *Turn) Add(a Action) {
	t.Actions = append(t.Actions, a)
}

// ItemHook returns the events produced by user using item.
type ItemHook func(user *model.Creature, item data.ItemID) []Event

// SubmitTurn translates every action of turn into queued events, in order.
// Nothing is applied until ProcessEvents.
func (b *Battle) SubmitTurn(turn Turn) error {
	if b.IsOver() {
		return ErrBattleFinished
	}
	if turn.Number != b.turn {
		return fmt.Errorf("submitting turn %d during turn %d: %w", turn.Number, b.turn, ErrTurnMismatch)
	}
	for _, a := range turn.Actions {
		b.translate(a)
	}
	return nil
}

// PlayTurn runs a whole turn: selects actions, resolves them and ends the
// turn. The battle must be at StartTurn or SelectActions. Returns the
// handled events.
func (b *Battle) PlayTurn(actions ...Action) ([]Event, error) {
	if b.IsOver() {
		return nil, ErrBattleFinished
	}
	if b.state == StateStartTurn {
		b.AdvanceState()
	}
	if b.state != StateSelectActions {
		return nil, fmt.Errorf("playing turn %d in %s: %w", b.turn, b.state, ErrWrongPhase)
	}

	if err := b.SubmitTurn(NewTurn(b.turn, actions...)); err != nil {
		return nil, err
	}
	b.AdvanceState()
	events := b.ProcessEvents()
	b.AdvanceState()
	b.AdvanceState()
	return events, nil
}

func (b *Battle) translate(a Action) {
	switch a.Kind {
	case ActionAttack:
		b.translateAttack(a)
	case ActionStrike:
		b.queue.Push(DamageEvent(a.Actor, a.Target, a.Amount))
	case ActionHeal:
		b.queue.Push(HealEvent(a.Actor, a.Target, a.Amount))
	case ActionSwitch:
		b.translateSwitch(a)
	case ActionUseItem:
		user := b.Creature(a.Actor)
		if user == nil {
			return
		}
		if b.itemHook == nil {
			b.queue.Push(CustomEvent(fmt.Sprintf("%s used item %d: no effect", user.Name(), a.Item)))
			return
		}
		for _, ev := range b.itemHook(user, a.Item) {
			b.queue.Push(ev)
		}
	}
}

func (b *Battle) translateAttack(a Action) {
	attacker := b.Creature(a.Actor)
	target := b.Creature(a.Target)
	if attacker == nil || target == nil || attacker.IsFainted() {
		return
	}

	move, ok := b.move(a.Move)
	if !ok {
		b.queue.Push(MissEvent(a.Actor, a.Target))
		return
	}
	if !attacker.KnowsMove(move.ID) {
		b.queue.Push(CustomEvent(fmt.Sprintf("%s does not know %s", attacker.Name(), move.Name)))
		return
	}
	if !attacker.UsePP(move.ID) {
		b.queue.Push(CustomEvent(fmt.Sprintf("%s has no PP left for %s", attacker.Name(), move.Name)))
		return
	}

	amount := combat.MoveDamage(move, b.types(attacker), b.types(target), b.formula)
	if amount == 0 {
		b.queue.Push(MissEvent(a.Actor, a.Target))
		return
	}
	b.queue.Push(DamageEvent(a.Actor, a.Target, uint16(min(amount, math.MaxUint16))))
}

func (b *Battle) translateSwitch(a Action) {
	side := b.SideOf(a.Actor)
	if side == NoSide {
		return
	}
	p := b.roster.party(side)
	if p == nil {
		return
	}
	i, j := p.IndexOf(a.Actor), p.IndexOf(a.Target)
	if i < 0 || j < 0 || i == j {
		return
	}
	out, in := p.Get(i), p.Get(j)
	if in.IsFainted() || !p.Swap(i, j) {
		return
	}
	b.queue.Push(CustomEvent(fmt.Sprintf("%s switched out for %s", out.Name(), in.Name())))
}

func (b *Battle) move(id data.MoveID) (*data.Move, bool) {
	if b.catalog == nil {
		return nil, false
	}
	return b.catalog.Move(id)
}

func (b *Battle) types(c *model.Creature) []data.CreatureType {
	if b.catalog == nil {
		return nil
	}
	s, ok := b.catalog.Species(c.SpeciesID())
	if !ok {
		return nil
	}
	return s.Types
}
