package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/monbattle/internal/data"
)

// CatalogRepository загружает и сохраняет каталог видов и приёмов.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository создаёт новый CatalogRepository.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load читает весь каталог. Приёмы загружаются первыми, так как
// learnset видов ссылается на них.
func (r *CatalogRepository) Load(ctx context.Context) (*data.MemoryCatalog, error) {
	cat := data.NewMemoryCatalog()

	if err := r.loadMoves(ctx, cat); err != nil {
		return nil, err
	}

	types, err := r.loadTypes(ctx)
	if err != nil {
		return nil, err
	}
	learnsets, err := r.loadLearnsets(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, growth_rate, attack, defense, max_hp, speed
		FROM species
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying species: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s                             data.Species
			growth                        string
			attack, defense, maxHP, speed int
		)
		if err := rows.Scan(&s.ID, &s.Name, &growth, &attack, &defense, &maxHP, &speed); err != nil {
			return nil, fmt.Errorf("scanning species row: %w", err)
		}
		if s.GrowthRate, err = data.ParseGrowthRate(growth); err != nil {
			return nil, fmt.Errorf("species %d: %w", s.ID, err)
		}
		if s.BaseStats, err = data.NewBaseStats(attack, defense, maxHP, speed); err != nil {
			return nil, fmt.Errorf("species %d: %w", s.ID, err)
		}
		s.Types = types[s.ID]
		s.Learnset = learnsets[s.ID]
		if err := cat.AddSpecies(s); err != nil {
			return nil, fmt.Errorf("adding species: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating species rows: %w", err)
	}

	species, moves := cat.Counts()
	slog.Debug("catalog loaded from database", "species", species, "moves", moves)
	return cat, nil
}

func (r *CatalogRepository) loadMoves(ctx context.Context, cat *data.MemoryCatalog) error {
	rows, err := r.db.Query(ctx, `SELECT id, name, type, power, max_pp FROM moves ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m            data.Move
			typ          string
			power, maxPP int16
		)
		if err := rows.Scan(&m.ID, &m.Name, &typ, &power, &maxPP); err != nil {
			return fmt.Errorf("scanning move row: %w", err)
		}
		if m.Type, err = data.ParseCreatureType(typ); err != nil {
			return fmt.Errorf("move %d: %w", m.ID, err)
		}
		m.Power = uint8(power)
		m.MaxPP = uint8(maxPP)
		if err := cat.AddMove(m); err != nil {
			return fmt.Errorf("adding move: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating move rows: %w", err)
	}
	return nil
}

func (r *CatalogRepository) loadTypes(ctx context.Context) (map[data.SpeciesID][]data.CreatureType, error) {
	rows, err := r.db.Query(ctx, `SELECT species_id, type FROM species_types ORDER BY species_id, slot`)
	if err != nil {
		return nil, fmt.Errorf("querying species types: %w", err)
	}
	defer rows.Close()

	out := make(map[data.SpeciesID][]data.CreatureType, 32)
	for rows.Next() {
		var (
			id  data.SpeciesID
			typ string
		)
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, fmt.Errorf("scanning species type row: %w", err)
		}
		t, err := data.ParseCreatureType(typ)
		if err != nil {
			return nil, fmt.Errorf("species %d: %w", id, err)
		}
		out[id] = append(out[id], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating species type rows: %w", err)
	}
	return out, nil
}

func (r *CatalogRepository) loadLearnsets(ctx context.Context) (map[data.SpeciesID][]data.LearnableMove, error) {
	rows, err := r.db.Query(ctx, `SELECT species_id, level, move_id FROM learnsets ORDER BY species_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying learnsets: %w", err)
	}
	defer rows.Close()

	out := make(map[data.SpeciesID][]data.LearnableMove, 32)
	for rows.Next() {
		var (
			id    data.SpeciesID
			level int16
			move  data.MoveID
		)
		if err := rows.Scan(&id, &level, &move); err != nil {
			return nil, fmt.Errorf("scanning learnset row: %w", err)
		}
		lvl, err := data.NewLevel(int(level))
		if err != nil {
			return nil, fmt.Errorf("species %d learnset: %w", id, err)
		}
		out[id] = append(out[id], data.LearnableMove{Level: lvl, MoveID: move})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating learnset rows: %w", err)
	}
	return out, nil
}

// Save заменяет содержимое каталога в БД (полная перезапись).
// Удаляет старые записи и вставляет новые в одной транзакции.
func (r *CatalogRepository) Save(ctx context.Context, cat *data.MemoryCatalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	if err := r.SaveTx(ctx, tx, cat); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SaveTx сохраняет каталог в рамках существующей транзакции.
func (r *CatalogRepository) SaveTx(ctx context.Context, tx pgx.Tx, cat *data.MemoryCatalog) error {
	// learnsets и species_types удаляются каскадом
	if _, err := tx.Exec(ctx, `DELETE FROM species`); err != nil {
		return fmt.Errorf("deleting species: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM moves`); err != nil {
		return fmt.Errorf("deleting moves: %w", err)
	}

	moves := cat.AllMoves()
	moveRows := make([][]any, 0, len(moves))
	for _, m := range moves {
		moveRows = append(moveRows, []any{int32(m.ID), m.Name, m.Type.String(), int16(m.Power), int16(m.MaxPP)})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"moves"},
		[]string{"id", "name", "type", "power", "max_pp"},
		pgx.CopyFromRows(moveRows),
	); err != nil {
		return fmt.Errorf("inserting moves: %w", err)
	}

	species := cat.AllSpecies()
	speciesRows := make([][]any, 0, len(species))
	typeRows := make([][]any, 0, len(species)*2)
	learnRows := make([][]any, 0, len(species)*8)
	for _, s := range species {
		speciesRows = append(speciesRows, []any{
			int32(s.ID), s.Name, s.GrowthRate.String(),
			int16(s.BaseStats.Attack.Get()), int16(s.BaseStats.Defense.Get()),
			int16(s.BaseStats.MaxHP.Get()), int16(s.BaseStats.Speed.Get()),
		})
		for slot, t := range s.Types {
			typeRows = append(typeRows, []any{int32(s.ID), int16(slot), t.String()})
		}
		for pos, lm := range s.Learnset {
			learnRows = append(learnRows, []any{int32(s.ID), int16(pos), int16(lm.Level.Get()), int32(lm.MoveID)})
		}
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"species"},
		[]string{"id", "name", "growth_rate", "attack", "defense", "max_hp", "speed"},
		pgx.CopyFromRows(speciesRows),
	); err != nil {
		return fmt.Errorf("inserting species: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"species_types"},
		[]string{"species_id", "slot", "type"},
		pgx.CopyFromRows(typeRows),
	); err != nil {
		return fmt.Errorf("inserting species types: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"learnsets"},
		[]string{"species_id", "position", "level", "move_id"},
		pgx.CopyFromRows(learnRows),
	); err != nil {
		return fmt.Errorf("inserting learnsets: %w", err)
	}

	slog.Debug("catalog saved", "species", len(species), "moves", len(moves))
	return nil
}
