package battle

// PartyWipe is the game-over policy used by callers that drive battles to
// completion: the battle is over once either side has no creature left
// standing. winner is the surviving side, or NoSide when both sides are wiped
// or the battle goes on.
//
// PartyWipe only reports; the caller decides whether to call Finish.
func PartyWipe(b *Battle) (over bool, winner int) {
	wiped1 := b.roster.allFainted(Side1)
	wiped2 := b.roster.allFainted(Side2)

	switch {
	case wiped1 && wiped2:
		return true, NoSide
	case wiped1:
		return true, Side2
	case wiped2:
		return true, Side1
	}
	return false, NoSide
}
