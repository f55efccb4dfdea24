package roster

import (
	"fmt"
	"strconv"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

// Roller evaluates dice expressions.
type Roller interface {
	RollExpr(expr string) (dice.RollResult, error)
}

// SpawnOptions tunes how a roster becomes a game.
type SpawnOptions struct {
	// RollHitPoints rolls each monster's hit dice instead of using its fixed hp.
	RollHitPoints bool
}

// Spawn creates the participants of a new game at round 1, turn 0. Ids are
// assigned from 1 in roster order: monsters (expanded by count), players,
// then the lair. Initiative is d20 + Dex modifier + bonus; the tiebreaker is
// 100 * Dex + d100, so higher Dex wins ties before chance does.
//
// Postcondition: the returned Game satisfies Validate, with every action
// available.
func (r *Roster) Spawn(roller Roller, opts SpawnOptions) (*encounter.Game, error) {
	g := &encounter.Game{Participants: make(map[int]encounter.Participant), Round: 1}
	next := 1
	add := func(p encounter.Participant) {
		g.Participants[next] = p
		next++
	}

	for _, entry := range r.Monsters {
		count := max(entry.Count, 1)
		for i := 1; i <= count; i++ {
			m, err := spawnMonster(entry, i, count, roller, opts)
			if err != nil {
				return nil, err
			}
			add(m)
		}
	}
	for _, entry := range r.Players {
		initiative, tie, err := rollInitiative(roller, entry.Stats.Dex, entry.InitiativeBonus)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", entry.Name, err)
		}
		add(&encounter.Player{
			Name:            entry.Name,
			Classes:         append([]encounter.Class(nil), entry.Classes...),
			Stats:           entry.Stats,
			AC:              entry.AC,
			InitiativeBonus: entry.InitiativeBonus,
			SmallPortrait:   entry.SmallPortrait,
			FullPortrait:    entry.FullPortrait,
			Initiative:      initiative,
			Tiebreaker:      tie,
			Action:          true,
			Reaction:        true,
			BonusAction:     true,
			Notes:           entry.Notes,
			Conditions:      []condition.Condition{},
		})
	}
	if r.Lair != nil {
		add(&encounter.Lair{
			Name:          r.Lair.Name,
			Notes:         r.Lair.Notes,
			Action:        true,
			SmallPortrait: r.Lair.SmallPortrait,
			FullPortrait:  r.Lair.FullPortrait,
		})
	}

	g.Order = encounter.OrderByInitiative(g.Participants)
	return g, nil
}

func spawnMonster(entry Monster, n, count int, roller Roller, opts SpawnOptions) (*encounter.Monster, error) {
	name := entry.Name
	if count > 1 {
		name += " " + strconv.Itoa(n)
	}
	initiative, tie, err := rollInitiative(roller, entry.Stats.Dex, entry.InitiativeBonus)
	if err != nil {
		return nil, fmt.Errorf("monster %q: %w", name, err)
	}
	hp := entry.HP
	if entry.HitDice != "" && (opts.RollHitPoints || hp < 1) {
		r, err := roller.RollExpr(entry.HitDice)
		if err != nil {
			return nil, fmt.Errorf("monster %q: hit dice: %w", name, err)
		}
		hp = max(r.Value(), 1)
	}
	legendary := make([]bool, entry.LegendaryActions)
	for i := range legendary {
		legendary[i] = true
	}
	hostile := entry.Hostile == nil || *entry.Hostile
	return &encounter.Monster{
		Name:                 name,
		Subtype:              entry.Subtype,
		Stats:                entry.Stats,
		CR:                   entry.CR,
		AC:                   entry.AC,
		InitiativeBonus:      entry.InitiativeBonus,
		SmallPortrait:        entry.SmallPortrait,
		FullPortrait:         entry.FullPortrait,
		HitDice:              entry.HitDice,
		Initiative:           initiative,
		Tiebreaker:           tie,
		Action:               true,
		Reaction:             true,
		BonusAction:          true,
		HP:                   hp,
		MaxHP:                hp,
		LegendaryActions:     legendary,
		LegendaryActionCount: entry.LegendaryActions,
		Notes:                entry.Notes,
		Conditions:           []condition.Condition{},
		IsHostile:            hostile,
	}, nil
}

func rollInitiative(roller Roller, dex, bonus int) (initiative, tiebreaker int, err error) {
	d20, err := roller.RollExpr("d20")
	if err != nil {
		return 0, 0, fmt.Errorf("initiative: %w", err)
	}
	d100, err := roller.RollExpr("d100")
	if err != nil {
		return 0, 0, fmt.Errorf("tiebreaker: %w", err)
	}
	return d20.Value() + encounter.Modifier(dex) + bonus, 100*dex + d100.Value(), nil
}
