package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/udisondev/monbattle/internal/data"
)

// MaxMoveSlots is the number of moves a creature can know at once.
const MaxMoveSlots = 4

// CreatureID is a random 128-bit identity assigned at creation.
type CreatureID uuid.UUID

// NewCreatureID returns a fresh random id.
func NewCreatureID() CreatureID {
	return CreatureID(uuid.New())
}

func (id CreatureID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether id was never assigned.
func (id CreatureID) IsZero() bool {
	return id == CreatureID{}
}

// IndividualStats are the stats of one creature.
// Derived from species base stats at creation.
type IndividualStats struct {
	Attack  data.Stat
	Defense data.Stat
	MaxHP   data.Stat
	Speed   data.Stat
}

// IndividualStatsFromBase copies base stats verbatim.
func IndividualStatsFromBase(base data.BaseStats) IndividualStats {
	return IndividualStats{
		Attack:  base.Attack,
		Defense: base.Defense,
		MaxHP:   base.MaxHP,
		Speed:   base.Speed,
	}
}

// MovePP tracks remaining uses of a known move. Current never exceeds Max.
type MovePP struct {
	Current uint8
	Max     uint8
}

// CreatureMove is an occupied move slot.
type CreatureMove struct {
	MoveID data.MoveID
	PP     MovePP
}

// LearnMoveResult is the outcome of TryLearnMove.
type LearnMoveResult uint8

const (
	// Learned means the move took the first empty slot.
	Learned LearnMoveResult = iota
	// AlreadyKnown means the move is in a slot already; nothing changed.
	AlreadyKnown
	// MustForgetOldMove means all slots are full; nothing changed.
	MustForgetOldMove
)

func (r LearnMoveResult) String() string {
	switch r {
	case Learned:
		return "learned"
	case AlreadyKnown:
		return "already_known"
	case MustForgetOldMove:
		return "must_forget_old_move"
	}
	return fmt.Sprintf("LearnMoveResult(%d)", r)
}

// Creature is a battle participant.
//
// Invariants: 0 <= currentHP <= stats.MaxHP; currentHP == 0 iff fainted;
// experience >= growth curve threshold of level.
// Not safe for concurrent use: a creature belongs to one party of one battle.
type Creature struct {
	id        CreatureID
	speciesID data.SpeciesID
	name      string

	level      data.Level
	experience int64

	stats     IndividualStats
	currentHP int

	moves [MaxMoveSlots]*CreatureMove
}

// NewCreature creates a creature of species at level with full HP and no moves.
// Experience starts at the curve threshold of level.
func NewCreature(species *data.Species, level int) (*Creature, error) {
	lvl, err := data.NewLevel(level)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", species.Name, err)
	}
	stats := IndividualStatsFromBase(species.BaseStats)
	return &Creature{
		id:         NewCreatureID(),
		speciesID:  species.ID,
		name:       species.Name,
		level:      lvl,
		experience: species.GrowthRate.ExpForLevel(lvl),
		stats:      stats,
		currentHP:  stats.MaxHP.Get(),
	}, nil
}

// ID returns the immutable creature identity.
func (c *Creature) ID() CreatureID {
	return c.id
}

// SpeciesID returns the catalog id of the creature's species.
func (c *Creature) SpeciesID() data.SpeciesID {
	return c.speciesID
}

// Name returns the nickname, which defaults to the species name.
func (c *Creature) Name() string {
	return c.name
}

// SetName changes the nickname. Empty names are ignored.
func (c *Creature) SetName(name string) {
	if name != "" {
		c.name = name
	}
}

func (c *Creature) Level() data.Level {
	return c.level
}

func (c *Creature) Experience() int64 {
	return c.experience
}

func (c *Creature) Stats() IndividualStats {
	return c.stats
}

func (c *Creature) CurrentHP() int {
	return c.currentHP
}

func (c *Creature) MaxHP() int {
	return c.stats.MaxHP.Get()
}

// IsFainted reports whether HP is zero.
func (c *Creature) IsFainted() bool {
	return c.currentHP == 0
}

// ModifyHP adds delta to current HP, clamped to [0, MaxHP].
// Comparisons are done before adding so any magnitude is safe.
func (c *Creature) ModifyHP(delta int) {
	maxHP := c.MaxHP()
	switch {
	case delta >= maxHP-c.currentHP:
		c.currentHP = maxHP
	case delta <= -c.currentHP:
		c.currentHP = 0
	default:
		c.currentHP += delta
	}
}

// setStats replaces individual stats. A living creature keeps the HP it has
// lost and stays alive; a fainted one stays fainted.
func (c *Creature) setStats(stats IndividualStats) {
	diff := stats.MaxHP.Get() - c.stats.MaxHP.Get()
	c.stats = stats
	if c.currentHP == 0 {
		return
	}
	c.currentHP = min(max(c.currentHP+diff, 1), c.MaxHP())
}

// Slot returns the move in slot i. Returns false for an empty or invalid slot.
func (c *Creature) Slot(i int) (CreatureMove, bool) {
	if i < 0 || i >= MaxMoveSlots || c.moves[i] == nil {
		return CreatureMove{}, false
	}
	return *c.moves[i], true
}

// Moves returns a copy of all slots; empty slots are nil.
func (c *Creature) Moves() [MaxMoveSlots]*CreatureMove {
	var out [MaxMoveSlots]*CreatureMove
	for i, m := range c.moves {
		if m != nil {
			cp := *m
			out[i] = &cp
		}
	}
	return out
}

// KnowsMove reports whether id occupies any slot.
func (c *Creature) KnowsMove(id data.MoveID) bool {
	return c.slotOf(id) >= 0
}

func (c *Creature) slotOf(id data.MoveID) int {
	for i, m := range c.moves {
		if m != nil && m.MoveID == id {
			return i
		}
	}
	return -1
}

// TryLearnMove puts id into the first empty slot with full PP.
// Never overwrites: with all slots taken the caller must ForgetMove first.
func (c *Creature) TryLearnMove(id data.MoveID, maxPP uint8) LearnMoveResult {
	if c.KnowsMove(id) {
		return AlreadyKnown
	}
	for i, m := range c.moves {
		if m == nil {
			c.moves[i] = &CreatureMove{
				MoveID: id,
				PP:     MovePP{Current: maxPP, Max: maxPP},
			}
			return Learned
		}
	}
	return MustForgetOldMove
}

// ForgetMove empties slot and returns what was there.
// Returns false if slot is out of range or already empty.
func (c *Creature) ForgetMove(slot int) (CreatureMove, bool) {
	m, ok := c.Slot(slot)
	if !ok {
		return CreatureMove{}, false
	}
	c.moves[slot] = nil
	return m, true
}

// UsePP spends one PP of id. Returns false if the move is unknown or out of PP.
func (c *Creature) UsePP(id data.MoveID) bool {
	i := c.slotOf(id)
	if i < 0 || c.moves[i].PP.Current == 0 {
		return false
	}
	c.moves[i].PP.Current--
	return true
}

func (c *Creature) String() string {
	return fmt.Sprintf("%s (Lv%d %d/%d HP)", c.name, c.level, c.currentHP, c.MaxHP())
}
