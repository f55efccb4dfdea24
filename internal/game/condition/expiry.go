package condition

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

// ExpiryType is the discriminator of an Expiry.
type ExpiryType string

const (
	ExpiryNone          ExpiryType = "none"
	ExpiryNextTurnStart ExpiryType = "nextTurnStart"
	ExpiryNextTurnEnd   ExpiryType = "nextTurnEnd"
	ExpiryDuration      ExpiryType = "duration"
)

// Expiry is the rule that governs when a condition is removed.
// Rounds is only meaningful for ExpiryDuration and is always > 0 there.
type Expiry struct {
	Type   ExpiryType `json:"type"`
	Rounds int        `json:"rounds,omitempty"`
}

// NoExpiry returns an expiry for conditions that last until removed.
func NoExpiry() Expiry { return Expiry{Type: ExpiryNone} }

// NextTurnStartExpiry returns an expiry at the start of the owner's next turn.
func NextTurnStartExpiry() Expiry { return Expiry{Type: ExpiryNextTurnStart} }

// NextTurnEndExpiry returns an expiry at the end of the owner's next turn.
func NextTurnEndExpiry() Expiry { return Expiry{Type: ExpiryNextTurnEnd} }

// DurationExpiry returns an expiry after the given number of rounds.
//
// Precondition: rounds > 0. Panics otherwise.
func DurationExpiry(rounds int) Expiry {
	if rounds <= 0 {
		panic(fmt.Sprintf("condition: DurationExpiry requires rounds > 0, got %d", rounds))
	}
	return Expiry{Type: ExpiryDuration, Rounds: rounds}
}

// Validate checks that e is a well-formed expiry variant.
func (e Expiry) Validate() error {
	switch e.Type {
	case ExpiryNone, ExpiryNextTurnStart, ExpiryNextTurnEnd:
		return nil
	case ExpiryDuration:
		if e.Rounds <= 0 {
			return fmt.Errorf("duration expiry must have rounds > 0, got %d", e.Rounds)
		}
		return nil
	default:
		return fmt.Errorf("unknown expiry type %q", e.Type)
	}
}

func (e Expiry) String() string {
	if e.Type == ExpiryDuration {
		return fmt.Sprintf("%s(%d)", e.Type, e.Rounds)
	}
	return string(e.Type)
}

func expiryRank(t ExpiryType) int {
	switch t {
	case ExpiryNextTurnEnd:
		return 0
	case ExpiryNextTurnStart:
		return 1
	case ExpiryDuration:
		return 2
	default:
		return 3
	}
}

// CompareExpiry orders expiries from soonest to latest: nextTurnEnd,
// nextTurnStart, duration by rounds, then none.
//
// Postcondition: Returns -1, 0 or 1.
func CompareExpiry(a, b Expiry) int {
	ra, rb := expiryRank(a.Type), expiryRank(b.Type)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	if a.Type == ExpiryDuration {
		switch {
		case a.Rounds < b.Rounds:
			return -1
		case a.Rounds > b.Rounds:
			return 1
		}
	}
	return 0
}

// DurationType is the user's choice of how long a new condition lasts.
type DurationType string

const (
	UntilRemoved DurationType = "untilRemoved"
	StartTurn    DurationType = "startTurn"
	EndTurn      DurationType = "endTurn"
	Elapsed      DurationType = "elapsed"
)

// ElapsedUnit is the unit of an Elapsed duration amount.
type ElapsedUnit string

const (
	Seconds ElapsedUnit = "seconds"
	Minutes ElapsedUnit = "minutes"
	Hours   ElapsedUnit = "hours"
)

// ToSeconds converts amount in unit to seconds. Unrecognised units are treated
// as seconds. Results outside the range of int saturate at math.MaxInt or
// math.MinInt.
func ToSeconds(amount int, unit ElapsedUnit) int {
	perUnit := 1
	switch unit {
	case Hours:
		perUnit = 3600
	case Minutes:
		perUnit = 60
	}
	switch {
	case amount > math.MaxInt/perUnit:
		return math.MaxInt
	case amount < math.MinInt/perUnit:
		return math.MinInt
	}
	return amount * perUnit
}

// ToExpiry classifies a duration request into an Expiry variant.
// Elapsed durations become whole rounds, rounded up, and never less than one.
// Unrecognised duration types last until removed.
//
// Postcondition: The returned Expiry passes Validate.
func ToExpiry(durationType DurationType, amount int, unit ElapsedUnit) Expiry {
	switch durationType {
	case StartTurn:
		return NextTurnStartExpiry()
	case EndTurn:
		return NextTurnEndExpiry()
	case Elapsed:
		rounds := gametime.CeilRounds(ToSeconds(amount, unit))
		return DurationExpiry(max(1, rounds))
	default:
		return NoExpiry()
	}
}
