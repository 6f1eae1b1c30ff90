package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/monbattle/internal/data"
)

func TestEffectivePower(t *testing.T) {
	flame := &data.Move{ID: 100, Name: "Flame", Type: data.TypeFire, Power: 90, MaxPP: 10}

	tests := []struct {
		name     string
		user     []data.CreatureType
		defender []data.CreatureType
		want     float64
	}{
		{"super effective, no STAB", []data.CreatureType{data.TypeNormal}, []data.CreatureType{data.TypeGrass}, 180},
		{"super effective with STAB", []data.CreatureType{data.TypeFire}, []data.CreatureType{data.TypeGrass}, 270},
		{"dual type cancels", []data.CreatureType{data.TypeFire}, []data.CreatureType{data.TypeGrass, data.TypeWater}, 135},
		{"resisted", []data.CreatureType{data.TypeNormal}, []data.CreatureType{data.TypeWater}, 45},
		{"neutral", []data.CreatureType{data.TypeNormal}, []data.CreatureType{data.TypeElectric}, 90},
		{"STAB from second type", []data.CreatureType{data.TypeWater, data.TypeFire}, []data.CreatureType{data.TypeNormal}, 135},
		{"no defender types", nil, nil, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EffectivePower(flame, tt.user, tt.defender), 1e-9)
		})
	}
}

func TestEffectivePower_ZeroPower(t *testing.T) {
	splash := &data.Move{ID: 101, Name: "Splash", Type: data.TypeWater, Power: 0, MaxPP: 40}
	assert.Zero(t, EffectivePower(splash, []data.CreatureType{data.TypeWater}, []data.CreatureType{data.TypeFire}))
}

func TestTruncatedPower(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{67.5, 67},
		{135, 135},
		{0.99, 0},
		{-3, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncatedPower(tt.in), "TruncatedPower(%v)", tt.in)
	}
}

func TestMoveDamage(t *testing.T) {
	ember := &data.Move{ID: 5, Name: "Ember", Type: data.TypeFire, Power: 45, MaxPP: 25}
	fire := []data.CreatureType{data.TypeFire}
	water := []data.CreatureType{data.TypeWater}

	// 45 × 0.5 × 1.5 = 33.75
	assert.Equal(t, 33, MoveDamage(ember, fire, water, nil))

	double := func(p float64) int { return int(p * 2) }
	assert.Equal(t, 67, MoveDamage(ember, fire, water, double))

	negative := func(float64) int { return -10 }
	assert.Zero(t, MoveDamage(ember, fire, water, negative))
}
