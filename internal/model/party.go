package model

import (
	"errors"
	"fmt"
)

// MaxPartySize is the number of slots in a party.
const MaxPartySize = 6

var (
	ErrPartyFull      = errors.New("party full")
	ErrAlreadyInParty = errors.New("creature already in party")
	ErrNilPartyMember = errors.New("nil creature")
)

// Party is an ordered, fixed-capacity group of creatures.
// The active creature is the first one that has not fainted; empty slots
// and fainted creatures are skipped. Fainted creatures keep their slot.
//
// Not safe for concurrent use: a party is owned by one battle.
type Party struct {
	slots [MaxPartySize]*Creature
}

// NewParty fills slots in order. Creatures past MaxPartySize are dropped,
// as are nil entries.
func NewParty(creatures ...*Creature) *Party {
	p := &Party{}
	i := 0
	for _, c := range creatures {
		if c == nil {
			continue
		}
		if i == MaxPartySize {
			break
		}
		p.slots[i] = c
		i++
	}
	return p
}

// Add puts c into the first empty slot.
func (p *Party) Add(c *Creature) error {
	if c == nil {
		return ErrNilPartyMember
	}
	if p.IndexOf(c.ID()) >= 0 {
		return fmt.Errorf("%s: %w", c.Name(), ErrAlreadyInParty)
	}
	for i, s := range p.slots {
		if s == nil {
			p.slots[i] = c
			return nil
		}
	}
	return fmt.Errorf("adding %s: %w (max %d)", c.Name(), ErrPartyFull, MaxPartySize)
}

// Active returns the first non-fainted creature, or nil if there is none.
func (p *Party) Active() *Creature {
	for _, c := range p.slots {
		if c != nil && !c.IsFainted() {
			return c
		}
	}
	return nil
}

// Get returns the creature at index, or nil for an empty slot or a bad index.
func (p *Party) Get(index int) *Creature {
	if index < 0 || index >= MaxPartySize {
		return nil
	}
	return p.slots[index]
}

// Find returns the member with id, or nil.
func (p *Party) Find(id CreatureID) *Creature {
	if i := p.IndexOf(id); i >= 0 {
		return p.slots[i]
	}
	return nil
}

// IndexOf returns the slot holding id, or -1.
func (p *Party) IndexOf(id CreatureID) int {
	for i, c := range p.slots {
		if c != nil && c.ID() == id {
			return i
		}
	}
	return -1
}

// Swap exchanges slots i and j. Out-of-range indices leave the party
// unchanged and return false.
func (p *Party) Swap(i, j int) bool {
	if i < 0 || j < 0 || i >= MaxPartySize || j >= MaxPartySize {
		return false
	}
	p.slots[i], p.slots[j] = p.slots[j], p.slots[i]
	return true
}

// AllFainted reports whether every slot is empty or holds a fainted creature.
func (p *Party) AllFainted() bool {
	for _, c := range p.slots {
		if c != nil && !c.IsFainted() {
			return false
		}
	}
	return true
}

// Creatures returns the occupied slots in order.
func (p *Party) Creatures() []*Creature {
	out := make([]*Creature, 0, MaxPartySize)
	for _, c := range p.slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of occupied slots.
func (p *Party) Len() int {
	n := 0
	for _, c := range p.slots {
		if c != nil {
			n++
		}
	}
	return n
}
