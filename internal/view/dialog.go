package view

import (
	"context"
	"fmt"

	"github.com/cory-johannsen/initiative/internal/game/condition"
)

// ConditionDialog builds conditions for one target participant.
type ConditionDialog struct {
	game   *GameView
	target ParticipantView
}

// ConditionDialog opens the dialog for target.
func (v *GameView) ConditionDialog(target int) (*ConditionDialog, error) {
	pv, ok := v.participants[target]
	if !ok {
		return nil, fmt.Errorf("no participant %d", target)
	}
	return &ConditionDialog{game: v, target: pv}, nil
}

// Target returns the participant receiving the conditions.
func (d *ConditionDialog) Target() ParticipantView { return d.target }

// Candidates returns the participants that may be named as instigator.
func (d *ConditionDialog) Candidates() []ParticipantView { return d.game.Participants() }

// DefaultInstigator proposes the active participant as instigator, or nil
// when the target is itself active.
func (d *ConditionDialog) DefaultInstigator() (*int, error) {
	active, err := d.game.ActiveParticipantID()
	if err != nil {
		return nil, err
	}
	if active == d.target.ID() {
		return nil, nil
	}
	return &active, nil
}

// TurnParticipant returns the participant whose turns govern expiry.
func (d *ConditionDialog) TurnParticipant(instigator *int) int {
	if instigator != nil {
		return *instigator
	}
	return d.target.ID()
}

// ParticipantName returns the name of id, falling back to the target's name.
func (d *ConditionDialog) ParticipantName(id int) string {
	if pv, ok := d.game.participants[id]; ok {
		return pv.Name()
	}
	return d.target.Name()
}

// Build turns opts into conditions starting at the active turn.
func (d *ConditionDialog) Build(opts condition.BuildOptions) ([]condition.Condition, error) {
	ts, err := d.game.Turn()
	if err != nil {
		return nil, err
	}
	return condition.Build(opts, ts.Now()), nil
}

// Apply builds conditions from opts and sends them to the engine. An empty
// selection sends nothing.
func (d *ConditionDialog) Apply(ctx context.Context, opts condition.BuildOptions) ([]condition.Condition, error) {
	conds, err := d.Build(opts)
	if err != nil || len(conds) == 0 {
		return conds, err
	}
	return conds, d.target.AddConditions(ctx, conds)
}
