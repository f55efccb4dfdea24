// Package condition models time-bounded status effects attached to encounter
// participants: their construction from a user's selection, the classification
// of the requested expiry, and their display ordering.
//
// Conditions are immutable values. Removal is the authoritative engine's job;
// nothing in this package expires a condition on the client side.
package condition

import (
	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

// Canonical condition names. Any other name is a custom condition.
const (
	Blinded       = "blinded"
	Bloodied      = "bloodied"
	Charmed       = "charmed"
	Concentrating = "concentrating"
	Dead          = "dead"
	Deafened      = "deafened"
	Frightened    = "frightened"
	Grappled      = "grappled"
	Incapacitated = "incapacitated"
	Invisible     = "invisible"
	Marked        = "marked"
	Paralyzed     = "paralyzed"
	Petrified     = "petrified"
	Poisoned      = "poisoned"
	Prone         = "prone"
	Restrained    = "restrained"
	Stunned       = "stunned"
	Surprised     = "surprised"
	Unconscious   = "unconscious"
)

// Names lists the canonical condition names in alphabetical order.
var Names = []string{
	Blinded,
	Bloodied,
	Charmed,
	Concentrating,
	Dead,
	Deafened,
	Frightened,
	Grappled,
	Incapacitated,
	Invisible,
	Marked,
	Paralyzed,
	Petrified,
	Poisoned,
	Prone,
	Restrained,
	Stunned,
	Surprised,
	Unconscious,
}

var canonical = func() map[string]bool {
	m := make(map[string]bool, len(Names))
	for _, n := range Names {
		m[n] = true
	}
	return m
}()

// IsCanonical reports whether name is one of the recognised condition names.
func IsCanonical(name string) bool {
	return canonical[name]
}

// Condition is a status effect applied to a participant.
type Condition struct {
	Name      string        `json:"name"`
	StartTime gametime.Time `json:"startTime"`
	Expiry    Expiry        `json:"expiry"`
	// Instigator is the id of the participant that caused the condition, or nil
	// when it is self-inflicted or environmental.
	Instigator *int `json:"instigator,omitempty"`
}

// New returns a condition named name that lasts until removed.
func New(name string, start gametime.Time) Condition {
	return Condition{Name: name, StartTime: start, Expiry: NoExpiry()}
}

// WithExpiry returns a copy of c with the given expiry.
func (c Condition) WithExpiry(e Expiry) Condition {
	c.Expiry = e
	return c
}

// WithInstigator returns a copy of c attributed to participant id.
func (c Condition) WithInstigator(id int) Condition {
	c.Instigator = &id
	return c
}

// IsCanonical reports whether c carries a recognised condition name.
func (c Condition) IsCanonical() bool {
	return IsCanonical(c.Name)
}

func (c Condition) String() string {
	return c.Name
}

// TurnParticipant returns the participant whose turn boundaries govern c's
// expiry: the instigator when there is one, otherwise owner.
func (c Condition) TurnParticipant(owner int) int {
	if c.Instigator != nil {
		return *c.Instigator
	}
	return owner
}

// ExpiredAtTurnStart reports whether c should be cleared when its turn
// participant's turn begins at now. nextTurnStart conditions expire at the first
// such boundary after they started; duration conditions once their rounds have
// elapsed.
func (c Condition) ExpiredAtTurnStart(now gametime.Time) bool {
	switch c.Expiry.Type {
	case ExpiryNextTurnStart:
		return c.StartTime.Before(now)
	case ExpiryDuration:
		return now.Round-c.StartTime.Round >= c.Expiry.Rounds
	default:
		return false
	}
}

// ExpiredAtTurnEnd reports whether c should be cleared when its turn
// participant's turn, which began at now, ends. A condition applied during that
// same turn survives until the end of the next one.
func (c Condition) ExpiredAtTurnEnd(now gametime.Time) bool {
	return c.Expiry.Type == ExpiryNextTurnEnd && c.StartTime.Before(now)
}

var implications = map[string][]string{
	Grappled:    {Restrained},
	Paralyzed:   {Incapacitated},
	Petrified:   {Incapacitated, Unconscious},
	Stunned:     {Incapacitated},
	Unconscious: {Incapacitated, Prone},
}

// Implications returns the conditions implied by c, sharing its start time.
//
// Postcondition: Implied conditions last until removed and carry no instigator.
func (c Condition) Implications() []Condition {
	names := implications[c.Name]
	out := make([]Condition, 0, len(names))
	for _, n := range names {
		out = append(out, New(n, c.StartTime))
	}
	return out
}
