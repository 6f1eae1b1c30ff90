package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/monbattle/internal/model"
	"github.com/udisondev/monbattle/internal/testutil"
)

func TestPartyWipe(t *testing.T) {
	cat := testutil.Catalog()

	tests := []struct {
		name       string
		faint1     int
		faint2     int
		wantOver   bool
		wantWinner int
	}{
		{"both standing", 0, 0, false, NoSide},
		{"side 1 partly down", 1, 0, false, NoSide},
		{"side 1 wiped", 2, 0, true, Side2},
		{"side 2 wiped", 1, 2, true, Side1},
		{"both wiped", 2, 2, true, NoSide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side1 := []*model.Creature{
				newTestCreature(t, cat, testutil.SpeciesTestmon, 5),
				newTestCreature(t, cat, testutil.SpeciesTestmon, 5),
			}
			side2 := []*model.Creature{
				newTestCreature(t, cat, testutil.SpeciesBulby, 5),
				newTestCreature(t, cat, testutil.SpeciesBulby, 5),
			}
			for _, c := range side1[:tt.faint1] {
				c.ModifyHP(-c.MaxHP())
			}
			for _, c := range side2[:tt.faint2] {
				c.ModifyHP(-c.MaxHP())
			}

			b := New(model.NewParty(side1...), model.NewParty(side2...))
			over, winner := PartyWipe(b)
			assert.Equal(t, tt.wantOver, over)
			assert.Equal(t, tt.wantWinner, winner)
			assert.False(t, b.IsOver(), "PartyWipe never finishes the battle")
		})
	}
}

func TestPartyWipe_Duel(t *testing.T) {
	b, c1, c2, _ := newTestDuel(t)

	b.Attack(c1.ID(), c2.ID(), 30)
	b.ProcessEvents()

	over, winner := PartyWipe(b)
	assert.True(t, over)
	assert.Equal(t, Side1, winner)
}

func TestPartyWipe_EmptyParties(t *testing.T) {
	over, winner := PartyWipe(New(nil, nil))
	assert.True(t, over)
	assert.Equal(t, NoSide, winner)
}
