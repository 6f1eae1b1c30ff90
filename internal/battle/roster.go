package battle

import "github.com/udisondev/monbattle/internal/model"

// roster resolves the creatures of both sides. Lookups are linear: a side
// holds at most model.MaxPartySize creatures.
type roster interface {
	find(id model.CreatureID) (*model.Creature, int)
	active(side int) *model.Creature
	allFainted(side int) bool
	members(side int) []*model.Creature
	party(side int) *model.Party
}

// partyRoster backs party mode.
type partyRoster [2]*model.Party

func (r *partyRoster) find(id model.CreatureID) (*model.Creature, int) {
	for side, p := range r {
		if c := p.Find(id); c != nil {
			return c, side
		}
	}
	return nil, NoSide
}

func (r *partyRoster) active(side int) *model.Creature {
	return r[side].Active()
}

func (r *partyRoster) allFainted(side int) bool {
	return r[side].AllFainted()
}

func (r *partyRoster) members(side int) []*model.Creature {
	return r[side].Creatures()
}

func (r *partyRoster) party(side int) *model.Party {
	return r[side]
}

// duelRoster backs duel mode: one creature per side, no party.
type duelRoster [2]*model.Creature

func (r *duelRoster) find(id model.CreatureID) (*model.Creature, int) {
	for side, c := range r {
		if c.ID() == id {
			return c, side
		}
	}
	return nil, NoSide
}

func (r *duelRoster) active(side int) *model.Creature {
	if r[side].IsFainted() {
		return nil
	}
	return r[side]
}

func (r *duelRoster) allFainted(side int) bool {
	return r[side].IsFainted()
}

func (r *duelRoster) members(side int) []*model.Creature {
	return []*model.Creature{r[side]}
}

func (r *duelRoster) party(int) *model.Party {
	return nil
}
