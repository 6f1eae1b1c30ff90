package data

import (
	"errors"
	"fmt"
)

const (
	// MinStat is the lowest value a stat may hold.
	MinStat = 1
	// MaxStat is the highest value a stat may hold.
	MaxStat = 10000
)

// ErrStatOutOfRange is wrapped by every StatError.
var ErrStatOutOfRange = errors.New("stat out of range")

// StatError reports the rejected value of a stat construction.
type StatError struct {
	Value int
}

func (e *StatError) Error() string {
	return fmt.Sprintf("stat %d outside [%d, %d]", e.Value, MinStat, MaxStat)
}

func (e *StatError) Unwrap() error {
	return ErrStatOutOfRange
}

// Stat is a bounded integer in [MinStat, MaxStat].
// The zero value is not a valid stat; build stats with NewStat.
type Stat struct {
	v uint16
}

// NewStat validates value and returns it as a Stat.
func NewStat(value int) (Stat, error) {
	if value < MinStat || value > MaxStat {
		return Stat{}, &StatError{Value: value}
	}
	return Stat{v: uint16(value)}, nil
}

// MustStat is NewStat for literals known to be valid. Panics otherwise.
func MustStat(value int) Stat {
	s, err := NewStat(value)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the raw value.
func (s Stat) Get() int {
	return int(s.v)
}

// Add returns s+delta, re-validated through NewStat.
func (s Stat) Add(delta int) (Stat, error) {
	return NewStat(int(s.v) + delta)
}

func (s Stat) String() string {
	return fmt.Sprintf("%d", s.v)
}

// BaseStats is the stat block of a species.
type BaseStats struct {
	Attack  Stat
	Defense Stat
	MaxHP   Stat
	Speed   Stat
}

// NewBaseStats validates all four values. The first failing stat's error is returned.
func NewBaseStats(attack, defense, maxHP, speed int) (BaseStats, error) {
	var (
		bs  BaseStats
		err error
	)
	if bs.Attack, err = NewStat(attack); err != nil {
		return BaseStats{}, fmt.Errorf("attack: %w", err)
	}
	if bs.Defense, err = NewStat(defense); err != nil {
		return BaseStats{}, fmt.Errorf("defense: %w", err)
	}
	if bs.MaxHP, err = NewStat(maxHP); err != nil {
		return BaseStats{}, fmt.Errorf("max_hp: %w", err)
	}
	if bs.Speed, err = NewStat(speed); err != nil {
		return BaseStats{}, fmt.Errorf("speed: %w", err)
	}
	return bs, nil
}
