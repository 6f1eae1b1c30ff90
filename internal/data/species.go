package data

// SpeciesID identifies a species template in the catalog.
type SpeciesID int32

// MoveID identifies a move template in the catalog.
type MoveID int32

// Move is an immutable move template.
type Move struct {
	ID    MoveID
	Name  string
	Type  CreatureType
	Power uint8
	MaxPP uint8
}

// LearnableMove is one learnset entry: the move becomes available at Level.
type LearnableMove struct {
	Level  Level
	MoveID MoveID
}

// Species is an immutable creature template.
// Learnset is expected in non-decreasing level order but this is not enforced.
type Species struct {
	ID         SpeciesID
	Name       string
	BaseStats  BaseStats
	GrowthRate GrowthRate
	Types      []CreatureType
	Learnset   []LearnableMove
}

// MovesAt returns the learnset entries unlocked exactly at level, in learnset order.
func (s *Species) MovesAt(level Level) []MoveID {
	var ids []MoveID
	for _, lm := range s.Learnset {
		if lm.Level == level {
			ids = append(ids, lm.MoveID)
		}
	}
	return ids
}

// AbilityID and ItemID are reserved for ability/item hooks. The engine
// carries them through actions but attaches no behavior of its own.
type (
	AbilityID uint16
	ItemID    uint16
)

// Ability and Item have no engine-level data yet.
type (
	Ability struct{}
	Item    struct{}
)

// AbilityRegistry resolves ability definitions.
type AbilityRegistry interface {
	Ability(id AbilityID) (*Ability, bool)
}

// ItemRegistry resolves item definitions.
type ItemRegistry interface {
	Item(id ItemID) (*Item, bool)
}
