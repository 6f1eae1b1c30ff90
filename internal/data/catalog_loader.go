package data

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk YAML layout of a catalog.
type catalogFile struct {
	Moves   []moveDef    `yaml:"moves"`
	Species []speciesDef `yaml:"species"`
}

// Type and GrowthRate are pointers: both are required, and their zero values
// are valid entries that must not stand in for a missing key.
type moveDef struct {
	ID    MoveID        `yaml:"id"`
	Name  string        `yaml:"name"`
	Type  *CreatureType `yaml:"type"`
	Power uint8         `yaml:"power"`
	MaxPP uint8         `yaml:"max_pp"`
}

type baseStatsDef struct {
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	MaxHP   int `yaml:"max_hp"`
	Speed   int `yaml:"speed"`
}

type learnDef struct {
	Level int    `yaml:"level"`
	Move  MoveID `yaml:"move"`
}

type speciesDef struct {
	ID         SpeciesID      `yaml:"id"`
	Name       string         `yaml:"name"`
	GrowthRate *GrowthRate    `yaml:"growth_rate"`
	Types      []CreatureType `yaml:"types,flow"`
	BaseStats  baseStatsDef   `yaml:"base_stats"`
	Learnset   []learnDef     `yaml:"learnset"`
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) (*MemoryCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	cat, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	species, moves := cat.Counts()
	slog.Info("loaded catalog", "path", path, "species", species, "moves", moves)
	return cat, nil
}

// ParseCatalog builds a catalog from YAML. Display names are title-cased.
// Moves are registered before species so learnsets can be validated.
func ParseCatalog(raw []byte) (*MemoryCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}

	title := cases.Title(language.English)
	cat := NewMemoryCatalog()

	for _, md := range file.Moves {
		if md.Type == nil {
			return nil, fmt.Errorf("move %d (%s): type missing: %w", md.ID, md.Name, ErrUnknownType)
		}
		m := Move{
			ID:    md.ID,
			Name:  title.String(md.Name),
			Type:  *md.Type,
			Power: md.Power,
			MaxPP: md.MaxPP,
		}
		if err := cat.AddMove(m); err != nil {
			return nil, err
		}
	}

	for _, sd := range file.Species {
		if sd.GrowthRate == nil {
			return nil, fmt.Errorf("species %d (%s): growth_rate missing: %w", sd.ID, sd.Name, ErrUnknownGrowthRate)
		}
		bs, err := NewBaseStats(sd.BaseStats.Attack, sd.BaseStats.Defense, sd.BaseStats.MaxHP, sd.BaseStats.Speed)
		if err != nil {
			return nil, fmt.Errorf("species %d (%s): %w", sd.ID, sd.Name, err)
		}
		learnset := make([]LearnableMove, 0, len(sd.Learnset))
		for _, ld := range sd.Learnset {
			lvl, err := NewLevel(ld.Level)
			if err != nil {
				return nil, fmt.Errorf("species %d (%s) learnset: %w", sd.ID, sd.Name, err)
			}
			learnset = append(learnset, LearnableMove{Level: lvl, MoveID: ld.Move})
		}
		s := Species{
			ID:         sd.ID,
			Name:       title.String(sd.Name),
			BaseStats:  bs,
			GrowthRate: *sd.GrowthRate,
			Types:      sd.Types,
			Learnset:   learnset,
		}
		if err := cat.AddSpecies(s); err != nil {
			return nil, err
		}
	}

	return cat, nil
}

// MarshalCatalog renders c in the layout ParseCatalog reads.
func MarshalCatalog(c *MemoryCatalog) ([]byte, error) {
	var file catalogFile
	for _, m := range c.AllMoves() {
		file.Moves = append(file.Moves, moveDef{
			ID:    m.ID,
			Name:  m.Name,
			Type:  &m.Type,
			Power: m.Power,
			MaxPP: m.MaxPP,
		})
	}
	for _, s := range c.AllSpecies() {
		sd := speciesDef{
			ID:         s.ID,
			Name:       s.Name,
			GrowthRate: &s.GrowthRate,
			Types:      s.Types,
			BaseStats: baseStatsDef{
				Attack:  s.BaseStats.Attack.Get(),
				Defense: s.BaseStats.Defense.Get(),
				MaxHP:   s.BaseStats.MaxHP.Get(),
				Speed:   s.BaseStats.Speed.Get(),
			},
		}
		for _, lm := range s.Learnset {
			sd.Learnset = append(sd.Learnset, learnDef{Level: lm.Level.Get(), Move: lm.MoveID})
		}
		file.Species = append(file.Species, sd)
	}
	return yaml.Marshal(&file)
}
