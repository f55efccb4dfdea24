package view

import (
	"github.com/cory-johannsen/initiative/internal/game/difficulty"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

// GameView is the read model of one snapshot.
type GameView struct {
	game         *encounter.Game
	participants map[int]ParticipantView
}

// NewGameView validates g and projects its participants. The view takes
// ownership of g: action toggles write through to it.
//
// Postcondition: a snapshot violating the Game invariants is rejected with an
// error wrapping encounter.ErrContractViolation.
func NewGameView(g *encounter.Game, cmds Commands) (*GameView, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	participants := make(map[int]ParticipantView, len(g.Participants))
	for id, p := range g.Participants {
		pv, err := newParticipantView(id, p, cmds)
		if err != nil {
			return nil, err
		}
		participants[id] = pv
	}
	return &GameView{game: g, participants: participants}, nil
}

// Round returns the current round, starting at 1.
func (v *GameView) Round() int { return v.game.Round }

// TurnIndex returns the index into the initiative order of the active turn.
func (v *GameView) TurnIndex() int { return v.game.Turn }

// ElapsedSeconds returns Round * gametime.SecondsPerRound.
func (v *GameView) ElapsedSeconds() int { return v.game.Round * gametime.SecondsPerRound }

// Turn resolves the active turn. It fails for an empty encounter or an
// out-of-range turn index.
func (v *GameView) Turn() (encounter.TurnState, error) {
	return encounter.Resolve(v.game)
}

// ActiveParticipantID returns Order[Turn].
func (v *GameView) ActiveParticipantID() (int, error) {
	ts, err := v.Turn()
	if err != nil {
		return 0, err
	}
	return ts.ActiveID, nil
}

// Participants returns the participant views in initiative order.
func (v *GameView) Participants() []ParticipantView {
	out := make([]ParticipantView, 0, len(v.game.Order))
	for _, id := range v.game.Order {
		out = append(out, v.participants[id])
	}
	return out
}

// Participant returns the view of id.
func (v *GameView) Participant(id int) (ParticipantView, bool) {
	pv, ok := v.participants[id]
	return pv, ok
}

// Difficulty rates the encounter: hostile monsters against the party.
func (v *GameView) Difficulty(rules difficulty.RulesVersion) difficulty.Encounter {
	var crs, levels []int
	for _, id := range v.game.Order {
		switch p := v.game.Participants[id].(type) {
		case *encounter.Monster:
			if p.IsHostile {
				crs = append(crs, p.CR)
			}
		case *encounter.Player:
			levels = append(levels, p.TotalLevel())
		case *encounter.Lair:
		}
	}
	return difficulty.Calculate(crs, levels, rules)
}
