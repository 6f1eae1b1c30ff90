package battle

import "fmt"

// State is the phase of the current turn.
type State uint8

const (
	StateStartTurn      State = iota // turn begins
	StateSelectActions               // actions are submitted
	StateResolveActions              // queued events are processed
	StateEndTurn                     // bookkeeping before the next turn
	StateFinished                    // absorbing; set only by Finish
)

func (s State) String() string {
	switch s {
	case StateStartTurn:
		return "start_turn"
	case StateSelectActions:
		return "select_actions"
	case StateResolveActions:
		return "resolve_actions"
	case StateEndTurn:
		return "end_turn"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", s)
}

// Next returns the phase after s and whether that transition starts a new turn.
// Finished maps to itself.
func (s State) Next() (next State, newTurn bool) {
	switch s {
	case StateStartTurn:
		return StateSelectActions, false
	case StateSelectActions:
		return StateResolveActions, false
	case StateResolveActions:
		return StateEndTurn, false
	case StateEndTurn:
		return StateStartTurn, true
	}
	return StateFinished, false
}
