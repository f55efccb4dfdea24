package enginev1

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

// GameSnapshot carries the engine's encoded Game. It is decoded on the
// receiving side so a malformed snapshot surfaces as a contract violation
// rather than a transport failure.
type GameSnapshot struct {
	Game json.RawMessage `json:"game"`
}

// NewGameSnapshot encodes g.
func NewGameSnapshot(g *encounter.Game) (*GameSnapshot, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return &GameSnapshot{Game: data}, nil
}

// Decode returns the validated Game carried by s.
//
// Postcondition: any malformed snapshot yields an error wrapping
// encounter.ErrContractViolation.
func (s *GameSnapshot) Decode() (*encounter.Game, error) {
	if s == nil || len(s.Game) == 0 {
		return nil, fmt.Errorf("%w: empty snapshot", encounter.ErrContractViolation)
	}
	var g encounter.Game
	if err := json.Unmarshal(s.Game, &g); err != nil {
		if errors.Is(err, encounter.ErrContractViolation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", encounter.ErrContractViolation, err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// HitPoints selects how a new game sets monster hit points.
type HitPoints string

const (
	// HitPointsDefault leaves the choice to the engine's configuration.
	HitPointsDefault HitPoints = ""
	HitPointsFixed   HitPoints = "fixed"
	HitPointsRolled  HitPoints = "rolled"
)

// NewGameRequest starts a fresh encounter.
type NewGameRequest struct {
	HitPoints HitPoints `json:"hitPoints,omitempty"`
}

// DamageRequest applies damage to a monster.
type DamageRequest struct {
	Target int              `json:"target"`
	Damage encounter.Damage `json:"damage"`
}

// HealRequest heals or sets the hit points of a monster.
type HealRequest struct {
	Target  int               `json:"target"`
	Healing encounter.Healing `json:"healing"`
}

// SetActionRequest marks one action-economy slot available or spent.
type SetActionRequest struct {
	Target    int              `json:"target"`
	Action    encounter.Action `json:"action"`
	Available bool             `json:"available"`
}

// AddConditionsRequest attaches conditions to a participant.
type AddConditionsRequest struct {
	Target     int                   `json:"target"`
	Conditions []condition.Condition `json:"conditions"`
}

// RollRequest asks the engine to evaluate a dice expression.
type RollRequest struct {
	Expr string `json:"expr"`
}

// RollResponse is the outcome of a RollRequest.
type RollResponse struct {
	Value int            `json:"value"`
	Dice  []dice.DieRoll `json:"dice"`
}

// NewRollResponse converts a roll result to its wire form.
func NewRollResponse(r dice.RollResult) *RollResponse {
	out := &RollResponse{Value: r.Value(), Dice: r.Dice}
	if out.Dice == nil {
		out.Dice = []dice.DieRoll{}
	}
	return out
}
