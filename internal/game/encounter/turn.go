package encounter

import (
	"fmt"

	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

// TurnState is the turn engine's reading of a snapshot.
type TurnState struct {
	Round int
	Turn  int
	// ActiveID is Order[Turn].
	ActiveID int
	// ActiveInitiative is the initiative score of the active participant.
	ActiveInitiative int
	// ElapsedSeconds is Round * gametime.SecondsPerRound.
	ElapsedSeconds int
}

// Now returns the encounter time of the active turn.
func (s TurnState) Now() gametime.Time {
	return gametime.Time{Round: s.Round, Initiative: s.ActiveInitiative}
}

// Resolve derives the turn state of g. An out-of-range turn index is a
// contract violation and is reported, never clamped.
//
// Precondition: g must be non-nil.
// Postcondition: On success, ActiveID == g.Order[g.Turn]. On failure the error
// wraps ErrInvalidTurn.
func Resolve(g *Game) (TurnState, error) {
	if g.Turn < 0 || g.Turn >= len(g.Order) {
		return TurnState{}, fmt.Errorf("%w: turn %d not in [0, %d)", ErrInvalidTurn, g.Turn, len(g.Order))
	}
	id := g.Order[g.Turn]
	p, ok := g.Participants[id]
	if !ok || p == nil {
		return TurnState{}, fmt.Errorf("%w: active id %d has no participant", ErrInconsistentOrder, id)
	}
	return TurnState{
		Round:            g.Round,
		Turn:             g.Turn,
		ActiveID:         id,
		ActiveInitiative: Initiative(p),
		ElapsedSeconds:   g.Round * gametime.SecondsPerRound,
	}, nil
}
