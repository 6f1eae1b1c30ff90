package data

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// MinLevel is the starting level of every creature.
	MinLevel = 1
	// MaxLevel is the level cap. No growth curve goes past it.
	MaxLevel = 100
)

var (
	ErrLevelOutOfRange   = errors.New("level out of range")
	ErrUnknownGrowthRate = errors.New("unknown growth rate")
)

// Level is a creature level in [MinLevel, MaxLevel].
type Level uint8

// NewLevel validates value and returns it as a Level.
func NewLevel(value int) (Level, error) {
	if value < MinLevel || value > MaxLevel {
		return 0, fmt.Errorf("level %d: %w", value, ErrLevelOutOfRange)
	}
	return Level(value), nil
}

// MustLevel is NewLevel for literals known to be valid. Panics otherwise.
func MustLevel(value int) Level {
	l, err := NewLevel(value)
	if err != nil {
		panic(err)
	}
	return l
}

// Get returns the raw value.
func (l Level) Get() int {
	return int(l)
}

// IsMax reports whether l is the level cap.
func (l Level) IsMax() bool {
	return l >= MaxLevel
}

// Next returns the following level. At MaxLevel it returns l, false.
func (l Level) Next() (Level, bool) {
	if l.IsMax() {
		return l, false
	}
	return l + 1, true
}

// GrowthRate selects which experience curve a species follows.
type GrowthRate uint8

const (
	GrowthErratic GrowthRate = iota
	GrowthFast
	GrowthMediumFast
	GrowthMediumSlow
	GrowthSlow
	GrowthFluctuating
)

// GrowthRates lists every curve in declaration order.
var GrowthRates = [...]GrowthRate{
	GrowthErratic,
	GrowthFast,
	GrowthMediumFast,
	GrowthMediumSlow,
	GrowthSlow,
	GrowthFluctuating,
}

var growthRateNames = [...]string{
	GrowthErratic:     "erratic",
	GrowthFast:        "fast",
	GrowthMediumFast:  "medium_fast",
	GrowthMediumSlow:  "medium_slow",
	GrowthSlow:        "slow",
	GrowthFluctuating: "fluctuating",
}

func (r GrowthRate) String() string {
	if int(r) < len(growthRateNames) {
		return growthRateNames[r]
	}
	return fmt.Sprintf("GrowthRate(%d)", r)
}

// ParseGrowthRate accepts the snake_case name of a curve, case-insensitively.
// "mediumfast" and "medium-fast" are accepted as well.
func ParseGrowthRate(s string) (GrowthRate, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for i, name := range growthRateNames {
		if strings.ReplaceAll(name, "_", "") == key {
			return GrowthRate(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownGrowthRate)
}

func (r GrowthRate) MarshalYAML() (any, error) {
	return r.String(), nil
}

func (r *GrowthRate) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseGrowthRate(node.Value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ExpForLevel returns the cumulative experience needed to reach level.
// Integer arithmetic, truncating division, strictly increasing in level for every curve.
func (r GrowthRate) ExpForLevel(level Level) int64 {
	n := int64(level)
	cube := n * n * n

	switch r {
	case GrowthFast:
		return 4 * cube / 5
	case GrowthMediumFast:
		return cube
	case GrowthMediumSlow:
		// Level 1 evaluates to -54.
		return max(6*cube/5-15*n*n+100*n-140, 0)
	case GrowthSlow:
		return 5 * cube / 4
	case GrowthErratic:
		switch {
		case n < 50:
			return cube * (100 - n) / 50
		case n < 68:
			return cube * (150 - n) / 100
		case n < 98:
			return cube * ((1911 - 10*n) / 3) / 500
		default:
			return cube * (160 - n) / 100
		}
	case GrowthFluctuating:
		switch {
		case n <= 15:
			return cube * ((n+1)/3 + 24) / 50
		case n <= 36:
			return cube * (n + 14) / 50
		default:
			return cube * (n/2 + 32) / 50
		}
	}
	panic(fmt.Sprintf("ExpForLevel: unknown growth rate %d", r))
}

// ExpToNextLevel returns the experience between level and the one after it.
// Returns false at MaxLevel.
func (r GrowthRate) ExpToNextLevel(level Level) (int64, bool) {
	next, ok := level.Next()
	if !ok {
		return 0, false
	}
	return r.ExpForLevel(next) - r.ExpForLevel(level), true
}

// LevelFromExp returns the highest level whose threshold is <= exp.
// Binary search over [MinLevel, MaxLevel]; relies on ExpForLevel being monotonic.
func (r GrowthRate) LevelFromExp(exp int64) Level {
	low, high := Level(MinLevel), Level(MaxLevel)
	for low < high {
		mid := low + (high-low+1)/2
		if exp >= r.ExpForLevel(mid) {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}
