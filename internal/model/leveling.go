package model

import (
	"fmt"
	"math"

	"github.com/udisondev/monbattle/internal/data"
)

// LevelUpKind tags a LevelUpEvent.
type LevelUpKind uint8

const (
	// CanLearnMove is emitted for each learnset entry matching a reached level.
	CanLearnMove LevelUpKind = iota
	// CanEvolve is reserved for evolution triggers. Nothing emits it yet.
	CanEvolve
)

// LevelUpEvent is produced by GainExp, one per learnable move per level reached.
type LevelUpEvent struct {
	Kind      LevelUpKind
	Level     data.Level
	MoveID    data.MoveID
	SpeciesID data.SpeciesID
}

// SpeciesLookup is the part of data.Catalog leveling needs.
type SpeciesLookup interface {
	Species(id data.SpeciesID) (*data.Species, bool)
	GrowthRate(id data.SpeciesID) (data.GrowthRate, bool)
}

// StatRecalcFunc derives individual stats for a level.
type StatRecalcFunc func(base data.BaseStats, level data.Level) IndividualStats

type levelConfig struct {
	recalc StatRecalcFunc
}

// LevelOption configures GainExp.
type LevelOption func(*levelConfig)

// WithStatRecalc recomputes individual stats on every level reached.
// Without it stats stay as created.
func WithStatRecalc(fn StatRecalcFunc) LevelOption {
	return func(cfg *levelConfig) {
		cfg.recalc = fn
	}
}

// GainExp adds amount to experience and applies level-ups one at a time,
// collecting the events of every intermediate level in order.
// amount <= 0 changes nothing. Experience saturates at math.MaxInt64.
//
// Panics if catalog does not know the creature's species: that is a
// configuration bug, and carrying on would leave level and experience out of sync.
func (c *Creature) GainExp(amount int64, catalog SpeciesLookup, opts ...LevelOption) []LevelUpEvent {
	if amount <= 0 {
		return nil
	}

	var cfg levelConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	rate, ok := catalog.GrowthRate(c.speciesID)
	if !ok {
		panic(fmt.Sprintf("GainExp: creature %s references unknown species %d", c.id, c.speciesID))
	}

	if amount > math.MaxInt64-c.experience {
		c.experience = math.MaxInt64
	} else {
		c.experience += amount
	}

	var events []LevelUpEvent
	for {
		next, ok := c.level.Next()
		if !ok || c.experience < rate.ExpForLevel(next) {
			break
		}
		events = append(events, c.levelUp(next, catalog, cfg)...)
	}
	return events
}

func (c *Creature) levelUp(next data.Level, catalog SpeciesLookup, cfg levelConfig) []LevelUpEvent {
	species, ok := catalog.Species(c.speciesID)
	if !ok {
		panic(fmt.Sprintf("levelUp: creature %s references unknown species %d", c.id, c.speciesID))
	}
	c.level = next
	if cfg.recalc != nil {
		c.setStats(cfg.recalc(species.BaseStats, next))
	}

	var events []LevelUpEvent
	for _, id := range species.MovesAt(next) {
		events = append(events, LevelUpEvent{
			Kind:      CanLearnMove,
			Level:     next,
			MoveID:    id,
			SpeciesID: c.speciesID,
		})
	}
	return events
}
