package data

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/cases"
)

var (
	ErrDuplicateSpecies = errors.New("duplicate species id")
	ErrDuplicateMove    = errors.New("duplicate move id")
	ErrUnknownMove      = errors.New("unknown move id")
	ErrInvalidSpecies   = errors.New("invalid species")
)

// Catalog is the read-only species/move store consulted by the engine.
// Lookups must stay stable for the lifetime of a battle.
type Catalog interface {
	Species(id SpeciesID) (*Species, bool)
	GrowthRate(id SpeciesID) (GrowthRate, bool)
	Learnset(id SpeciesID) ([]LearnableMove, bool)
	Move(id MoveID) (*Move, bool)
}

// MemoryCatalog is a Catalog backed by maps.
// Populate it with AddMove/AddSpecies before handing it to battles; it is
// not safe to mutate concurrently with reads.
type MemoryCatalog struct {
	species map[SpeciesID]*Species
	moves   map[MoveID]*Move

	speciesByName map[string]SpeciesID
	movesByName   map[string]MoveID
}

// foldName normalizes a display name for lookups. A Caser is stateful, so
// each call gets its own.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// NewMemoryCatalog returns an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		species:       make(map[SpeciesID]*Species, 32),
		moves:         make(map[MoveID]*Move, 64),
		speciesByName: make(map[string]SpeciesID, 32),
		movesByName:   make(map[string]MoveID, 64),
	}
}

// AddMove registers a move template.
func (c *MemoryCatalog) AddMove(m Move) error {
	if _, ok := c.moves[m.ID]; ok {
		return fmt.Errorf("move %d: %w", m.ID, ErrDuplicateMove)
	}
	if m.MaxPP == 0 {
		return fmt.Errorf("move %d (%s): max_pp must be positive", m.ID, m.Name)
	}
	c.moves[m.ID] = &m
	c.movesByName[foldName(m.Name)] = m.ID
	return nil
}

// AddSpecies registers a species template.
// Every learnset move must already be registered.
func (c *MemoryCatalog) AddSpecies(s Species) error {
	if _, ok := c.species[s.ID]; ok {
		return fmt.Errorf("species %d: %w", s.ID, ErrDuplicateSpecies)
	}
	if len(s.Types) == 0 || len(s.Types) > 2 {
		return fmt.Errorf("species %d (%s) has %d types: %w", s.ID, s.Name, len(s.Types), ErrInvalidSpecies)
	}
	for _, lm := range s.Learnset {
		if _, ok := c.moves[lm.MoveID]; !ok {
			return fmt.Errorf("species %d learnset level %d: move %d: %w", s.ID, lm.Level, lm.MoveID, ErrUnknownMove)
		}
	}
	s.Types = slices.Clone(s.Types)
	s.Learnset = slices.Clone(s.Learnset)
	c.species[s.ID] = &s
	c.speciesByName[foldName(s.Name)] = s.ID
	return nil
}

func (c *MemoryCatalog) Species(id SpeciesID) (*Species, bool) {
	s, ok := c.species[id]
	return s, ok
}

func (c *MemoryCatalog) GrowthRate(id SpeciesID) (GrowthRate, bool) {
	s, ok := c.species[id]
	if !ok {
		return 0, false
	}
	return s.GrowthRate, true
}

func (c *MemoryCatalog) Learnset(id SpeciesID) ([]LearnableMove, bool) {
	s, ok := c.species[id]
	if !ok {
		return nil, false
	}
	return s.Learnset, true
}

func (c *MemoryCatalog) Move(id MoveID) (*Move, bool) {
	m, ok := c.moves[id]
	return m, ok
}

// SpeciesByName finds a species by display name, ignoring case.
func (c *MemoryCatalog) SpeciesByName(name string) (*Species, bool) {
	id, ok := c.speciesByName[foldName(name)]
	if !ok {
		return nil, false
	}
	return c.species[id], true
}

// MoveByName finds a move by display name, ignoring case.
func (c *MemoryCatalog) MoveByName(name string) (*Move, bool) {
	id, ok := c.movesByName[foldName(name)]
	if !ok {
		return nil, false
	}
	return c.moves[id], true
}

// AllSpecies returns every species ordered by id.
func (c *MemoryCatalog) AllSpecies() []*Species {
	out := make([]*Species, 0, len(c.species))
	for _, s := range c.species {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Species) int { return int(a.ID) - int(b.ID) })
	return out
}

// AllMoves returns every move ordered by id.
func (c *MemoryCatalog) AllMoves() []*Move {
	out := make([]*Move, 0, len(c.moves))
	for _, m := range c.moves {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b *Move) int { return int(a.ID) - int(b.ID) })
	return out
}

// Counts returns the number of species and moves.
func (c *MemoryCatalog) Counts() (species, moves int) {
	return len(c.species), len(c.moves)
}
