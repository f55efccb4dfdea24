// Package view projects an engine snapshot into read models for display and
// turns user intent on those models into engine commands.
//
// Views are rebuilt from every snapshot. Action-economy toggles update the
// local view first and then issue the command; a failed command is reported
// by the Commands implementation and is not rolled back locally, so the view
// may disagree with the engine until the next snapshot is fetched.
package view

import (
	"context"
	"fmt"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

// Commands is the subset of the engine façade that views drive.
type Commands interface {
	SetAction(ctx context.Context, target int, a encounter.Action, available bool) error
	AddConditions(ctx context.Context, target int, conds []condition.Condition) error
	Damage(ctx context.Context, target int, d encounter.Damage) error
	Heal(ctx context.Context, target int, h encounter.Healing) error
}

// PortraitSize selects a portrait rendition.
type PortraitSize string

const (
	PortraitSmall PortraitSize = "small"
	PortraitFull  PortraitSize = "full"
)

// Fallback portrait assets per participant kind.
const (
	UnknownMonsterPortrait = "unknown-monster"
	UnknownPlayerPortrait  = "unknown-player"
	LairPortrait           = "lair"
)

// PortraitURL returns the URL of the named portrait asset.
func PortraitURL(asset string, size PortraitSize) string {
	return fmt.Sprintf("/images/portraits/%s.%s.jpg", asset, size)
}

func portrait(set, fallback string, size PortraitSize) string {
	if set != "" {
		return set
	}
	return PortraitURL(fallback, size)
}

// ParticipantView is one of *MonsterView, *PlayerView or *LairView.
type ParticipantView interface {
	ID() int
	Kind() encounter.Kind
	Name() string
	SmallPortrait() string
	FullPortrait() string
	Initiative() int
	// Conditions returns the participant's conditions in display order.
	Conditions() []condition.Condition
	// ClassNames returns the canonical condition names for styling.
	ClassNames() string
	AddConditions(ctx context.Context, conds []condition.Condition) error
	view()
}

func newParticipantView(id int, p encounter.Participant, cmds Commands) (ParticipantView, error) {
	switch v := p.(type) {
	case *encounter.Monster:
		return &MonsterView{id: id, model: v, cmds: cmds}, nil
	case *encounter.Player:
		return &PlayerView{id: id, model: v, cmds: cmds}, nil
	case *encounter.Lair:
		return &LairView{id: id, model: v, cmds: cmds}, nil
	default:
		return nil, fmt.Errorf("%w: participant %d is %T", encounter.ErrUnknownParticipant, id, p)
	}
}

// MonsterView projects a monster.
type MonsterView struct {
	id    int
	model *encounter.Monster
	cmds  Commands
}

func (*MonsterView) view() {}

// ID returns the participant id.
func (v *MonsterView) ID() int { return v.id }

// Kind reports the participant variant.
func (v *MonsterView) Kind() encounter.Kind { return encounter.KindMonster }

// Name returns the display name.
func (v *MonsterView) Name() string { return v.model.Name }

// Initiative returns the rolled initiative.
func (v *MonsterView) Initiative() int { return v.model.Initiative }

// Stats returns the ability scores.
func (v *MonsterView) Stats() encounter.Stats { return v.model.Stats }

// HP returns current hit points.
func (v *MonsterView) HP() int { return v.model.HP }

// MaxHP returns maximum hit points.
func (v *MonsterView) MaxHP() int { return v.model.MaxHP }

// TempHP returns temporary hit points.
func (v *MonsterView) TempHP() int { return v.model.TempHP }

// AC returns armor class.
func (v *MonsterView) AC() int { return v.model.AC }

// CR returns the challenge rating encoding.
func (v *MonsterView) CR() int { return v.model.CR }

// Notes returns free-form notes.
func (v *MonsterView) Notes() string { return v.model.Notes }

// IsHostile reports whether the monster fights the players.
func (v *MonsterView) IsHostile() bool { return v.model.IsHostile }

// Action reports whether the standard action is available.
func (v *MonsterView) Action() bool { return v.model.Action }

// Reaction reports whether the reaction is available.
func (v *MonsterView) Reaction() bool { return v.model.Reaction }

// BonusAction reports whether the bonus action is available.
func (v *MonsterView) BonusAction() bool { return v.model.BonusAction }

// SmallPortrait returns the thumbnail portrait URL.
func (v *MonsterView) SmallPortrait() string {
	return portrait(v.model.SmallPortrait, UnknownMonsterPortrait, PortraitSmall)
}

// FullPortrait returns the full-size portrait URL.
func (v *MonsterView) FullPortrait() string {
	return portrait(v.model.FullPortrait, UnknownMonsterPortrait, PortraitFull)
}

// Conditions returns conditions in priority order.
func (v *MonsterView) Conditions() []condition.Condition {
	return condition.SortByPriority(v.model.Conditions)
}

// ClassNames returns the canonical condition names for styling.
func (v *MonsterView) ClassNames() string { return condition.ClassNames(v.Conditions()) }

// LegendaryActions returns a copy of the legendary-action availability flags.
func (v *MonsterView) LegendaryActions() []bool {
	return append([]bool(nil), v.model.LegendaryActions...)
}

// SetAction marks the standard action available or spent.
func (v *MonsterView) SetAction(ctx context.Context, available bool) error {
	v.model.Action = available
	return v.cmds.SetAction(ctx, v.id, encounter.StandardAction(), available)
}

// SetReaction marks the reaction available or spent.
func (v *MonsterView) SetReaction(ctx context.Context, available bool) error {
	v.model.Reaction = available
	return v.cmds.SetAction(ctx, v.id, encounter.ReactionAction(), available)
}

// SetBonusAction marks the bonus action available or spent.
func (v *MonsterView) SetBonusAction(ctx context.Context, available bool) error {
	v.model.BonusAction = available
	return v.cmds.SetAction(ctx, v.id, encounter.BonusAction(), available)
}

// SetLegendaryAction marks legendary action index available or spent.
//
// Precondition: 0 <= index < len(LegendaryActions()).
func (v *MonsterView) SetLegendaryAction(ctx context.Context, index int, available bool) error {
	if index < 0 || index >= len(v.model.LegendaryActions) {
		return fmt.Errorf("legendary action %d out of range [0, %d)", index, len(v.model.LegendaryActions))
	}
	v.model.LegendaryActions[index] = available
	return v.cmds.SetAction(ctx, v.id, encounter.LegendaryAction(index), available)
}

// Damage asks the engine to apply d.
func (v *MonsterView) Damage(ctx context.Context, d encounter.Damage) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return v.cmds.Damage(ctx, v.id, d)
}

// Heal asks the engine to apply h.
func (v *MonsterView) Heal(ctx context.Context, h encounter.Healing) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return v.cmds.Heal(ctx, v.id, h)
}

// AddConditions asks the engine to attach conds.
func (v *MonsterView) AddConditions(ctx context.Context, conds []condition.Condition) error {
	return v.cmds.AddConditions(ctx, v.id, conds)
}

// PlayerView projects a player character.
type PlayerView struct {
	id    int
	model *encounter.Player
	cmds  Commands
}

func (*PlayerView) view() {}

// ID returns the participant id.
func (v *PlayerView) ID() int { return v.id }

// Kind reports the participant variant.
func (v *PlayerView) Kind() encounter.Kind { return encounter.KindPlayer }

// Name returns the display name.
func (v *PlayerView) Name() string { return v.model.Name }

// Initiative returns the rolled initiative.
func (v *PlayerView) Initiative() int { return v.model.Initiative }

// Stats returns the ability scores.
func (v *PlayerView) Stats() encounter.Stats { return v.model.Stats }

// AC returns armor class.
func (v *PlayerView) AC() int { return v.model.AC }

// TotalLevel returns the sum of class levels.
func (v *PlayerView) TotalLevel() int { return v.model.TotalLevel() }

// Notes returns free-form notes.
func (v *PlayerView) Notes() string { return v.model.Notes }

// Action reports whether the standard action is available.
func (v *PlayerView) Action() bool { return v.model.Action }

// Reaction reports whether the reaction is available.
func (v *PlayerView) Reaction() bool { return v.model.Reaction }

// BonusAction reports whether the bonus action is available.
func (v *PlayerView) BonusAction() bool { return v.model.BonusAction }

// Classes returns a copy of the player's classes.
func (v *PlayerView) Classes() []encounter.Class {
	return append([]encounter.Class(nil), v.model.Classes...)
}

// SmallPortrait returns the thumbnail portrait URL.
func (v *PlayerView) SmallPortrait() string {
	return portrait(v.model.SmallPortrait, UnknownPlayerPortrait, PortraitSmall)
}

// FullPortrait returns the full-size portrait URL.
func (v *PlayerView) FullPortrait() string {
	return portrait(v.model.FullPortrait, UnknownPlayerPortrait, PortraitFull)
}

// Conditions returns conditions in priority order.
func (v *PlayerView) Conditions() []condition.Condition {
	return condition.SortByPriority(v.model.Conditions)
}

// ClassNames returns the canonical condition names for styling.
func (v *PlayerView) ClassNames() string { return condition.ClassNames(v.Conditions()) }

// SetAction marks the standard action available or spent.
func (v *PlayerView) SetAction(ctx context.Context, available bool) error {
	v.model.Action = available
	return v.cmds.SetAction(ctx, v.id, encounter.StandardAction(), available)
}

// SetReaction marks the reaction available or spent.
func (v *PlayerView) SetReaction(ctx context.Context, available bool) error {
	v.model.Reaction = available
	return v.cmds.SetAction(ctx, v.id, encounter.ReactionAction(), available)
}

// SetBonusAction marks the bonus action available or spent.
func (v *PlayerView) SetBonusAction(ctx context.Context, available bool) error {
	v.model.BonusAction = available
	return v.cmds.SetAction(ctx, v.id, encounter.BonusAction(), available)
}

// AddConditions asks the engine to attach conds.
func (v *PlayerView) AddConditions(ctx context.Context, conds []condition.Condition) error {
	return v.cmds.AddConditions(ctx, v.id, conds)
}

// LairView projects a lair. Lairs carry no conditions.
type LairView struct {
	id    int
	model *encounter.Lair
	cmds  Commands
}

func (*LairView) view() {}

// ID returns the participant id.
func (v *LairView) ID() int { return v.id }

// Kind reports the participant variant.
func (v *LairView) Kind() encounter.Kind { return encounter.KindLair }

// Name returns the display name.
func (v *LairView) Name() string { return v.model.Name }

// Initiative returns the fixed lair initiative.
func (v *LairView) Initiative() int { return encounter.LairInitiative }

// Notes returns free-form notes.
func (v *LairView) Notes() string { return v.model.Notes }

// Action reports whether the standard action is available.
func (v *LairView) Action() bool { return v.model.Action }

// SmallPortrait returns the thumbnail portrait URL.
func (v *LairView) SmallPortrait() string {
	return portrait(v.model.SmallPortrait, LairPortrait, PortraitSmall)
}

// FullPortrait returns the full-size portrait URL.
func (v *LairView) FullPortrait() string {
	return portrait(v.model.FullPortrait, LairPortrait, PortraitFull)
}

// Conditions always returns an empty slice.
func (v *LairView) Conditions() []condition.Condition { return []condition.Condition{} }

// ClassNames always returns an empty string.
func (v *LairView) ClassNames() string { return "" }

// SetAction marks the lair action available or spent.
func (v *LairView) SetAction(ctx context.Context, available bool) error {
	v.model.Action = available
	return v.cmds.SetAction(ctx, v.id, encounter.StandardAction(), available)
}

// AddConditions forwards to the engine, which rejects conditions on a lair.
func (v *LairView) AddConditions(ctx context.Context, conds []condition.Condition) error {
	return v.cmds.AddConditions(ctx, v.id, conds)
}
