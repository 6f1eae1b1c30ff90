// Package battle runs turn-based battles between two sides.
// A turn moves through StartTurn → SelectActions → ResolveActions → EndTurn.
// Submitted actions become queued events, and ProcessEvents applies them to
// creatures in FIFO order.
//
// A Battle is single-threaded: it is driven by one caller, and every call
// completes before the next one starts.
package battle

import (
	"log/slog"

	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/game/combat"
	"github.com/udisondev/monbattle/internal/model"
)

// Side indexes.
const (
	Side1  = 0
	Side2  = 1
	NoSide = -1
)

// Encounter advances in turns until it is over.
type Encounter interface {
	ProcessTurn()
	IsOver() bool
}

var _ Encounter = (*Battle)(nil)

// Battle owns both sides, the turn phase and the event queue.
type Battle struct {
	roster roster
	state  State
	turn   uint32
	queue  EventQueue

	catalog  data.Catalog
	formula  combat.DamageFormula
	reporter Reporter
	itemHook ItemHook
}

// Option configures a Battle.
type Option func(*Battle)

// WithCatalog sets the catalog used to resolve moves and species types.
// Without one every move is unknown and attacks miss.
func WithCatalog(cat data.Catalog) Option {
	return func(b *Battle) {
		b.catalog = cat
	}
}

// WithDamageFormula replaces combat.TruncatedPower.
func WithDamageFormula(f combat.DamageFormula) Option {
	return func(b *Battle) {
		if f != nil {
			b.formula = f
		}
	}
}

// WithReporter replaces the default LogReporter.
func WithReporter(r Reporter) Option {
	return func(b *Battle) {
		if r != nil {
			b.reporter = r
		}
	}
}

// WithItemHook sets the handler for UseItem actions.
func WithItemHook(h ItemHook) Option {
	return func(b *Battle) {
		b.itemHook = h
	}
}

// New creates a battle between two parties. A nil party is treated as empty.
func New(p1, p2 *model.Party, opts ...Option) *Battle {
	if p1 == nil {
		p1 = model.NewParty()
	}
	if p2 == nil {
		p2 = model.NewParty()
	}
	return newBattle(&partyRoster{p1, p2}, opts)
}

// NewDuel creates a one-on-one battle. Both creatures must be non-nil.
func NewDuel(c1, c2 *model.Creature, opts ...Option) *Battle {
	if c1 == nil || c2 == nil {
		panic("battle: NewDuel with nil creature")
	}
	return newBattle(&duelRoster{c1, c2}, opts)
}

func newBattle(r roster, opts []Option) *Battle {
	b := &Battle{
		roster:   r,
		state:    StateStartTurn,
		turn:     1,
		formula:  combat.TruncatedPower,
		reporter: LogReporter{Level: slog.LevelDebug},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Battle) State() State {
	return b.state
}

// Turn returns the current turn number, starting at 1.
func (b *Battle) Turn() uint32 {
	return b.turn
}

// AdvanceState moves to the next phase. The turn number grows only on
// EndTurn → StartTurn. On Finished it does nothing.
func (b *Battle) AdvanceState() {
	next, newTurn := b.state.Next()
	if newTurn {
		b.turn++
	}
	b.state = next
}

// Finish puts the battle into the absorbing Finished state.
// The battle never calls it on its own; see PartyWipe.
func (b *Battle) Finish() {
	if b.state == StateFinished {
		return
	}
	b.state = StateFinished
	slog.Debug("battle finished", "turn", b.turn)
}

// ProcessTurn advances one phase unless the battle is over.
func (b *Battle) ProcessTurn() {
	if b.IsOver() {
		return
	}
	b.AdvanceState()
}

func (b *Battle) IsOver() bool {
	return b.state == StateFinished
}

// Enqueue appends ev to the event queue.
func (b *Battle) Enqueue(ev Event) {
	b.queue.Push(ev)
}

// Attack queues raw damage from attacker to target.
func (b *Battle) Attack(attacker, target model.CreatureID, damage uint16) {
	b.queue.Push(DamageEvent(attacker, target, damage))
}

// Pending returns the number of queued events.
func (b *Battle) Pending() int {
	return b.queue.Len()
}

// Creature returns the participant with id, or nil.
func (b *Battle) Creature(id model.CreatureID) *model.Creature {
	c, _ := b.roster.find(id)
	return c
}

// SideOf returns the side id fights on, or NoSide.
func (b *Battle) SideOf(id model.CreatureID) int {
	_, side := b.roster.find(id)
	return side
}

// Active returns the first non-fainted creature of side, or nil.
func (b *Battle) Active(side int) *model.Creature {
	return b.roster.active(side)
}

// Members returns the creatures of side in slot order.
func (b *Battle) Members(side int) []*model.Creature {
	return b.roster.members(side)
}

// Party returns the party of side, or nil in duel mode.
func (b *Battle) Party(side int) *model.Party {
	return b.roster.party(side)
}

// ProcessEvents drains the queue to a fixed point and returns the handled
// events in handling order. Each one is also passed to the reporter.
//
// A Damage that leaves its target fainted queues a Fainted event, which is
// handled in the same call. Damage and Heal aimed at an unknown creature are
// dropped without being reported.
func (b *Battle) ProcessEvents() []Event {
	var handled []Event
	for {
		ev, ok := b.queue.Pop()
		if !ok {
			return handled
		}
		if !b.apply(ev) {
			continue
		}
		b.reporter.Report(ev)
		handled = append(handled, ev)
	}
}

func (b *Battle) apply(ev Event) bool {
	switch ev.Kind {
	case KindDamage:
		target, _ := b.roster.find(ev.Target)
		if target == nil {
			return false
		}
		target.ModifyHP(-int(ev.Amount))
		if target.IsFainted() {
			b.queue.Push(FaintedEvent(ev.Target))
		}
	case KindHeal:
		target, _ := b.roster.find(ev.Target)
		if target == nil {
			return false
		}
		target.ModifyHP(int(ev.Amount))
	}
	return true
}
