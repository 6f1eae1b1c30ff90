package battle

import (
	"fmt"

	"github.com/udisondev/monbattle/internal/model"
)

// Kind tags an Event.
type Kind uint8

const (
	KindDamage  Kind = iota // Source hits Target for Amount HP
	KindHeal                // Source restores Amount HP to Target
	KindFainted             // Target dropped to 0 HP
	KindMiss                // Source failed to hit Target
	KindCustom              // free-form Description, no mutation
)

func (k Kind) String() string {
	switch k {
	case KindDamage:
		return "damage"
	case KindHeal:
		return "heal"
	case KindFainted:
		return "fainted"
	case KindMiss:
		return "miss"
	case KindCustom:
		return "custom"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Event is a pending or processed battle effect.
// Creatures are referenced by id; fields a kind does not use stay zero.
// A Fainted event carries the fainted creature in Target.
type Event struct {
	Kind        Kind
	Source      model.CreatureID
	Target      model.CreatureID
	Amount      uint16
	Description string
}

func DamageEvent(source, target model.CreatureID, amount uint16) Event {
	return Event{Kind: KindDamage, Source: source, Target: target, Amount: amount}
}

func HealEvent(source, target model.CreatureID, amount uint16) Event {
	return Event{Kind: KindHeal, Source: source, Target: target, Amount: amount}
}

func FaintedEvent(creature model.CreatureID) Event {
	return Event{Kind: KindFainted, Target: creature}
}

func MissEvent(source, target model.CreatureID) Event {
	return Event{Kind: KindMiss, Source: source, Target: target}
}

func CustomEvent(description string) Event {
	return Event{Kind: KindCustom, Description: description}
}

func (e Event) String() string {
	switch e.Kind {
	case KindDamage, KindHeal:
		return fmt.Sprintf("%s %s -> %s: %d", e.Kind, e.Source, e.Target, e.Amount)
	case KindFainted:
		return fmt.Sprintf("fainted %s", e.Target)
	case KindMiss:
		return fmt.Sprintf("miss %s -> %s", e.Source, e.Target)
	case KindCustom:
		return "custom: " + e.Description
	}
	return e.Kind.String()
}
