package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

// NextTurn ends the active turn and begins the next one, wrapping to a new
// round after the last participant.
//
// Postcondition: the newly active participant has its action economy
// restored, and conditions governed by the ending or starting turn have
// expired as their Expiry dictates.
func (e *Engine) NextTurn(ctx context.Context) error {
	now := e.now().UTC()
	return e.mutate(ctx, "next_turn", func(g *encounter.Game) error {
		if len(g.Order) == 0 {
			return fmt.Errorf("%w: encounter has no participants", ErrInvalidRequest)
		}
		ending, err := encounter.Resolve(g)
		if err != nil {
			return err
		}
		expire(g, ending.ActiveID, func(c condition.Condition) bool { return c.ExpiredAtTurnEnd(ending.Now()) })

		g.Turn++
		if g.Turn >= len(g.Order) {
			g.Turn = 0
			g.Round++
		}
		starting, err := encounter.Resolve(g)
		if err != nil {
			return err
		}
		beginTurn(g.Participants[starting.ActiveID])
		expire(g, starting.ActiveID, func(c condition.Condition) bool { return c.ExpiredAtTurnStart(starting.Now()) })
		g.TurnStarted = now
		return nil
	})
}

func beginTurn(p encounter.Participant) {
	switch v := p.(type) {
	case *encounter.Monster:
		v.Action, v.Reaction, v.BonusAction = true, true, true
		for i := range v.LegendaryActions {
			v.LegendaryActions[i] = true
		}
	case *encounter.Player:
		v.Action, v.Reaction, v.BonusAction = true, true, true
	case *encounter.Lair:
		v.Action = true
	}
}

// expire removes, from every participant, the conditions whose turn
// participant is turnID and for which expired reports true.
func expire(g *encounter.Game, turnID int, expired func(condition.Condition) bool) {
	drop := func(owner int) func(condition.Condition) bool {
		return func(c condition.Condition) bool {
			return c.TurnParticipant(owner) == turnID && expired(c)
		}
	}
	for id, p := range g.Participants {
		switch v := p.(type) {
		case *encounter.Monster:
			v.Conditions = slices.DeleteFunc(v.Conditions, drop(id))
		case *encounter.Player:
			v.Conditions = slices.DeleteFunc(v.Conditions, drop(id))
		case *encounter.Lair:
		}
	}
}

// currentTime is the encounter time of the active turn, or round start for an
// empty encounter.
func currentTime(g *encounter.Game) gametime.Time {
	ts, err := encounter.Resolve(g)
	if err != nil {
		return gametime.Time{Round: g.Round}
	}
	return ts.Now()
}
