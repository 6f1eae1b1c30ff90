package testutil

import (
	"github.com/udisondev/monbattle/internal/data"
)

// Species and move ids of the fixture catalog.
const (
	SpeciesBulby   data.SpeciesID = 1
	SpeciesCharmy  data.SpeciesID = 2
	SpeciesSquirty data.SpeciesID = 3
	SpeciesTestmon data.SpeciesID = 4
	SpeciesLotus   data.SpeciesID = 5

	MoveWaterGun  data.MoveID = 1
	MoveFireWheel data.MoveID = 2
	MoveGrassCut  data.MoveID = 3
	MoveTackle    data.MoveID = 4
	MoveEmber     data.MoveID = 5
	MoveSpark     data.MoveID = 6
	MoveSplash    data.MoveID = 7
)

// Fixtures содержит шаблоны тестового каталога.
// Bulby учит приёмы на уровнях 5, 10 и 15, у Testmon 30 HP и пустой learnset.
var Fixtures = struct {
	Moves   []data.Move
	Species []data.Species
}{
	Moves: []data.Move{
		{ID: MoveWaterGun, Name: "Water Gun", Type: data.TypeWater, Power: 80, MaxPP: 20},
		{ID: MoveFireWheel, Name: "Fire Wheel", Type: data.TypeFire, Power: 20, MaxPP: 20},
		{ID: MoveGrassCut, Name: "Grass Cut", Type: data.TypeGrass, Power: 95, MaxPP: 20},
		{ID: MoveTackle, Name: "Tackle", Type: data.TypeNormal, Power: 40, MaxPP: 35},
		{ID: MoveEmber, Name: "Ember", Type: data.TypeFire, Power: 40, MaxPP: 25},
		{ID: MoveSpark, Name: "Spark", Type: data.TypeElectric, Power: 65, MaxPP: 2},
		{ID: MoveSplash, Name: "Splash", Type: data.TypeWater, Power: 0, MaxPP: 40},
	},
	Species: []data.Species{
		{
			ID:         SpeciesBulby,
			Name:       "Bulby",
			BaseStats:  mustBaseStats(50, 50, 50, 50),
			GrowthRate: data.GrowthFast,
			Types:      []data.CreatureType{data.TypeGrass},
			Learnset: []data.LearnableMove{
				{Level: 5, MoveID: MoveWaterGun},
				{Level: 10, MoveID: MoveFireWheel},
				{Level: 15, MoveID: MoveGrassCut},
			},
		},
		{
			ID:         SpeciesCharmy,
			Name:       "Charmy",
			BaseStats:  mustBaseStats(52, 43, 39, 65),
			GrowthRate: data.GrowthMediumSlow,
			Types:      []data.CreatureType{data.TypeFire},
			Learnset: []data.LearnableMove{
				{Level: 1, MoveID: MoveTackle},
				{Level: 7, MoveID: MoveEmber},
			},
		},
		{
			ID:         SpeciesSquirty,
			Name:       "Squirty",
			BaseStats:  mustBaseStats(48, 65, 44, 43),
			GrowthRate: data.GrowthMediumSlow,
			Types:      []data.CreatureType{data.TypeWater},
			Learnset: []data.LearnableMove{
				{Level: 1, MoveID: MoveTackle},
				{Level: 7, MoveID: MoveWaterGun},
			},
		},
		{
			ID:         SpeciesTestmon,
			Name:       "Testmon",
			BaseStats:  mustBaseStats(10, 8, 30, 12),
			GrowthRate: data.GrowthFast,
			Types:      []data.CreatureType{data.TypeNormal},
		},
		{
			ID:         SpeciesLotus,
			Name:       "Lotus",
			BaseStats:  mustBaseStats(60, 60, 80, 40),
			GrowthRate: data.GrowthErratic,
			Types:      []data.CreatureType{data.TypeGrass, data.TypeWater},
			Learnset: []data.LearnableMove{
				{Level: 3, MoveID: MoveGrassCut},
				{Level: 3, MoveID: MoveWaterGun},
			},
		},
	},
}

// Catalog строит новый data.MemoryCatalog из Fixtures.
// Каждый вызов возвращает независимый экземпляр.
func Catalog() *data.MemoryCatalog {
	cat := data.NewMemoryCatalog()
	for _, m := range Fixtures.Moves {
		if err := cat.AddMove(m); err != nil {
			panic("fixture move: " + err.Error())
		}
	}
	for _, s := range Fixtures.Species {
		if err := cat.AddSpecies(s); err != nil {
			panic("fixture species: " + err.Error())
		}
	}
	return cat
}

// MustSpecies возвращает шаблон вида из каталога или паникует.
func MustSpecies(cat data.Catalog, id data.SpeciesID) *data.Species {
	s, ok := cat.Species(id)
	if !ok {
		panic("fixture species missing")
	}
	return s
}

func mustBaseStats(attack, defense, maxHP, speed int) data.BaseStats {
	bs, err := data.NewBaseStats(attack, defense, maxHP, speed)
	if err != nil {
		panic(err)
	}
	return bs
}
