package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/monbattle/internal/data"
	"github.com/udisondev/monbattle/internal/model"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrBadRef          = errors.New("bad creature ref")
)

// Battle modes.
const (
	ModeParty = "party"
	ModeDuel  = "duel"
)

// Scenario is a scripted battle: two sides and a list of turns.
// Creatures are referenced as "side.slot", e.g. "0.1" is the second
// creature of the first side.
type Scenario struct {
	Name string `yaml:"name"`
	Mode string `yaml:"mode"`

	// ExpOnFaint is awarded to the active creature of the opposing side
	// each time a creature faints. Zero disables experience.
	ExpOnFaint int64 `yaml:"exp_on_faint"`

	Sides [2]SideDef `yaml:"sides"`
	Turns []TurnDef  `yaml:"turns"`
}

type SideDef struct {
	Creatures []CreatureDef `yaml:"creatures"`
}

// CreatureDef describes one creature. Species and moves are catalog names or
// numeric ids. Level zero means 1.
type CreatureDef struct {
	Species  string   `yaml:"species"`
	Level    int      `yaml:"level"`
	Nickname string   `yaml:"nickname"`
	Moves    []string `yaml:"moves,flow"`
	// Damage is applied before the battle starts.
	Damage int `yaml:"damage"`
}

type TurnDef struct {
	// Repeat plays the turn this many times; zero means once.
	Repeat  int         `yaml:"repeat"`
	Actions []ActionDef `yaml:"actions"`
}

// ActionDef is one scripted action. Which fields matter depends on Kind:
// attack (actor, target, move), strike and heal (actor, target, amount),
// switch (actor out, target in), use_item (actor, item), pass.
type ActionDef struct {
	Kind   string `yaml:"kind"`
	Actor  string `yaml:"actor"`
	Target string `yaml:"target"`
	Move   string `yaml:"move"`
	Amount uint16 `yaml:"amount"`
	Item   uint16 `yaml:"item"`
}

// ParseScenario decodes a scenario from YAML and checks its shape.
// Species and move names are resolved later, against a catalog.
func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, err
	}
	if sc.Mode == "" {
		sc.Mode = ModeParty
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadScenarioFile reads one scenario. A scenario without a name is named
// after its file.
func LoadScenarioFile(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// LoadScenarioDir reads every *.yaml and *.yml file of dir, ordered by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenarioFile(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	slog.Info("loaded scenarios", "dir", dir, "count", len(scenarios))
	return scenarios, nil
}

// Validate checks everything that does not need a catalog. It does not
// modify sc; an empty Mode is treated as ModeParty.
func (sc *Scenario) Validate() error {
	switch sc.Mode {
	case "", ModeParty, ModeDuel:
	default:
		return fmt.Errorf("mode %q: %w", sc.Mode, ErrInvalidScenario)
	}
	if sc.ExpOnFaint < 0 {
		return fmt.Errorf("exp_on_faint %d: %w", sc.ExpOnFaint, ErrInvalidScenario)
	}

	for i, side := range sc.Sides {
		n := len(side.Creatures)
		if n == 0 {
			return fmt.Errorf("side %d has no creatures: %w", i, ErrInvalidScenario)
		}
		if n > model.MaxPartySize {
			return fmt.Errorf("side %d has %d creatures, max %d: %w", i, n, model.MaxPartySize, ErrInvalidScenario)
		}
		if sc.Mode == ModeDuel && n != 1 {
			return fmt.Errorf("duel side %d has %d creatures: %w", i, n, ErrInvalidScenario)
		}
		for j, c := range side.Creatures {
			if c.Species == "" {
				return fmt.Errorf("creature %d.%d has no species: %w", i, j, ErrInvalidScenario)
			}
			if len(c.Moves) > model.MaxMoveSlots {
				return fmt.Errorf("creature %d.%d knows %d moves, max %d: %w", i, j, len(c.Moves), model.MaxMoveSlots, ErrInvalidScenario)
			}
		}
	}

	for i, turn := range sc.Turns {
		if turn.Repeat < 0 {
			return fmt.Errorf("turn %d: repeat %d: %w", i, turn.Repeat, ErrInvalidScenario)
		}
		for j, a := range turn.Actions {
			if err := sc.validateAction(a); err != nil {
				return fmt.Errorf("turn %d action %d: %w", i, j, err)
			}
		}
	}
	return nil
}

func (sc *Scenario) validateAction(a ActionDef) error {
	switch a.Kind {
	case "pass":
		return nil
	case "use_item":
		_, _, err := sc.parseRef(a.Actor)
		return err
	case "attack":
		if a.Move == "" {
			return fmt.Errorf("attack without move: %w", ErrInvalidScenario)
		}
	case "strike", "heal", "switch":
	default:
		return fmt.Errorf("kind %q: %w", a.Kind, ErrInvalidScenario)
	}
	if _, _, err := sc.parseRef(a.Actor); err != nil {
		return err
	}
	_, _, err := sc.parseRef(a.Target)
	return err
}

// parseRef splits "side.slot" and checks both parts exist.
func (sc *Scenario) parseRef(ref string) (side, slot int, err error) {
	before, after, ok := strings.Cut(ref, ".")
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", ref, ErrBadRef)
	}
	side, err = strconv.Atoi(before)
	if err != nil || side < 0 || side > 1 {
		return 0, 0, fmt.Errorf("%q: side: %w", ref, ErrBadRef)
	}
	slot, err = strconv.Atoi(after)
	if err != nil || slot < 0 || slot >= len(sc.Sides[side].Creatures) {
		return 0, 0, fmt.Errorf("%q: slot: %w", ref, ErrBadRef)
	}
	return side, slot, nil
}

// resolveSpecies accepts a species name or numeric id.
func resolveSpecies(cat NamedCatalog, ref string) (*data.Species, bool) {
	if s, ok := cat.SpeciesByName(ref); ok {
		return s, true
	}
	if id, err := strconv.Atoi(ref); err == nil {
		return cat.Species(data.SpeciesID(id))
	}
	return nil, false
}

// resolveMove accepts a move name or numeric id. A numeric id is passed
// through even if the catalog does not know it, so scripts can exercise
// unknown moves.
func resolveMove(cat NamedCatalog, ref string) (data.MoveID, bool) {
	if m, ok := cat.MoveByName(ref); ok {
		return m.ID, true
	}
	if id, err := strconv.Atoi(ref); err == nil {
		return data.MoveID(id), true
	}
	return 0, false
}
