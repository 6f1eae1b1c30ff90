package data

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownType is returned when a type name cannot be parsed.
var ErrUnknownType = errors.New("unknown creature type")

// CreatureType is an elemental type. Values index the effectiveness chart.
type CreatureType uint8

const (
	TypeNormal CreatureType = iota
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric

	typeCount = iota
)

var typeNames = [typeCount]string{
	TypeNormal:   "normal",
	TypeFire:     "fire",
	TypeWater:    "water",
	TypeGrass:    "grass",
	TypeElectric: "electric",
}

func (t CreatureType) String() string {
	if int(t) < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("CreatureType(%d)", t)
}

// ParseCreatureType resolves a type name, case-insensitively.
func ParseCreatureType(s string) (CreatureType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range typeNames {
		if name == key {
			return CreatureType(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownType)
}

func (t CreatureType) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *CreatureType) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseCreatureType(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Effectiveness is the categorical multiplier of an attacker type against a defender type.
type Effectiveness uint8

// Values are the chart codes.
const (
	Immune    Effectiveness = 0
	Resistant Effectiveness = 1
	Normal    Effectiveness = 2
	Super     Effectiveness = 4
)

// Multiplier returns the damage factor: 0, 0.5, 1 or 2.
func (e Effectiveness) Multiplier() float64 {
	return float64(e) / 2
}

func (e Effectiveness) String() string {
	switch e {
	case Immune:
		return "immune"
	case Resistant:
		return "resistant"
	case Normal:
		return "normal"
	case Super:
		return "super"
	}
	return fmt.Sprintf("Effectiveness(%d)", e)
}

// typeChart[attacker][defender].
var typeChart = [typeCount][typeCount]Effectiveness{
	TypeNormal:   {Normal, Normal, Normal, Normal, Normal},
	TypeFire:     {Normal, Normal, Resistant, Super, Normal},
	TypeWater:    {Normal, Super, Normal, Resistant, Normal},
	TypeGrass:    {Normal, Resistant, Super, Normal, Normal},
	TypeElectric: {Normal, Normal, Normal, Normal, Normal},
}

// TypeEffectiveness looks up attacker against a single defender type.
// Indices outside the chart panic: types come from ParseCreatureType or the constants above.
func TypeEffectiveness(attacker, defender CreatureType) Effectiveness {
	return typeChart[attacker][defender]
}

// CombinedMultiplier multiplies the matchups against every defender type.
// An empty defender list yields 1.
func CombinedMultiplier(attacker CreatureType, defenders []CreatureType) float64 {
	m := 1.0
	for _, d := range defenders {
		m *= TypeEffectiveness(attacker, d).Multiplier()
	}
	return m
}
