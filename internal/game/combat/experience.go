package combat

import (
	"log/slog"

	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/model"
)

// LearnOutcome is the result of auto-learning one move unlocked by a level-up.
type LearnOutcome struct {
	Level  data.Level
	MoveID data.MoveID
	Result model.LearnMoveResult
}

// AwardExperience adds amount to creature's experience and tries to learn
// every move the reached levels unlock.
// MustForgetOldMove outcomes are returned as is: slots are never overwritten,
// the caller decides what to forget and retries.
//
// Panics like model.Creature.GainExp when catalog does not know the species.
func AwardExperience(creature *model.Creature, amount int64, catalog data.Catalog, opts ...model.LevelOption) []LearnOutcome {
	if amount <= 0 {
		return nil
	}

	oldLevel := creature.Level()
	events := creature.GainExp(amount, catalog, opts...)

	if creature.Level() > oldLevel {
		slog.Info("creature leveled up",
			"creature", creature.Name(),
			"oldLevel", oldLevel,
			"newLevel", creature.Level(),
			"exp", creature.Experience())
	}

	var outcomes []LearnOutcome
	for _, ev := range events {
		if ev.Kind != model.CanLearnMove {
			continue
		}

		move, ok := catalog.Move(ev.MoveID)
		if !ok {
			slog.Error("learnset references unknown move",
				"creature", creature.Name(),
				"species", ev.SpeciesID,
				"move", ev.MoveID)
			continue
		}

		res := creature.TryLearnMove(move.ID, move.MaxPP)
		outcomes = append(outcomes, LearnOutcome{
			Level:  ev.Level,
			MoveID: move.ID,
			Result: res,
		})

		slog.Debug("move unlocked",
			"creature", creature.Name(),
			"level", ev.Level,
			"move", move.Name,
			"result", res)
	}
	return outcomes
}
