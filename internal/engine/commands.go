package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

// Damage applies d to the monster target. Temporary hit points absorb damage
// first and hit points never drop below zero.
//
// Postcondition: the target is bloodied at or below half its maximum and dead
// at zero.
func (e *Engine) Damage(ctx context.Context, target int, d encounter.Damage) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return e.mutate(ctx, "damage", func(g *encounter.Game) error {
		m, err := monster(g, target, "damage")
		if err != nil {
			return err
		}
		now := currentTime(g)
		if d.Type == encounter.DamageKill {
			m.HP, m.TempHP = 0, 0
		} else {
			amount := d.Effective()
			absorbed := min(amount, m.TempHP)
			m.TempHP -= absorbed
			m.HP = max(0, m.HP-(amount-absorbed))
		}
		if m.HP*2 <= m.MaxHP {
			m.Conditions = addCondition(m.Conditions, condition.New(condition.Bloodied, now))
		}
		if m.HP <= 0 {
			m.Conditions = addCondition(m.Conditions, condition.New(condition.Dead, now))
		}
		return nil
	})
}

// Heal applies h to the monster target. Healing never exceeds maximum hit
// points; setHp takes the amount as given, even above the maximum.
//
// Postcondition: dead is removed once hit points are above zero and bloodied
// once they are above half the maximum.
func (e *Engine) Heal(ctx context.Context, target int, h encounter.Healing) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return e.mutate(ctx, "heal", func(g *encounter.Game) error {
		m, err := monster(g, target, "heal")
		if err != nil {
			return err
		}
		switch h.Type {
		case encounter.HealingHeal:
			m.HP = min(m.MaxHP, m.HP+h.Amount)
		case encounter.HealingSetHP:
			m.HP = h.Amount
		case encounter.HealingSetTempHP:
			m.TempHP = h.Amount
		}
		m.Conditions = slices.DeleteFunc(m.Conditions, func(c condition.Condition) bool {
			switch c.Name {
			case condition.Dead:
				return m.HP > 0
			case condition.Bloodied:
				return m.HP*2 > m.MaxHP
			}
			return false
		})
		return nil
	})
}

// SetAction marks one action-economy slot of target available or spent.
func (e *Engine) SetAction(ctx context.Context, target int, a encounter.Action, available bool) error {
	return e.mutate(ctx, "set_action", func(g *encounter.Game) error {
		p, err := lookup(g, target)
		if err != nil {
			return err
		}
		switch v := p.(type) {
		case *encounter.Monster:
			return setMonsterAction(v, a, available)
		case *encounter.Player:
			return setSlot(a, available, &v.Action, &v.Reaction, &v.BonusAction)
		case *encounter.Lair:
			if a.Type != encounter.ActionStandard {
				return fmt.Errorf("%w: lair has no %s", ErrUnsupported, a)
			}
			v.Action = available
			return nil
		default:
			return fmt.Errorf("%w: %T", ErrUnsupported, p)
		}
	})
}

func setMonsterAction(m *encounter.Monster, a encounter.Action, available bool) error {
	if a.Type != encounter.ActionLegendary {
		return setSlot(a, available, &m.Action, &m.Reaction, &m.BonusAction)
	}
	if a.Index < 0 || a.Index >= len(m.LegendaryActions) {
		return fmt.Errorf("%w: legendary action %d not in [0, %d)", ErrInvalidRequest, a.Index, len(m.LegendaryActions))
	}
	m.LegendaryActions[a.Index] = available
	return nil
}

func setSlot(a encounter.Action, available bool, action, reaction, bonus *bool) error {
	switch a.Type {
	case encounter.ActionStandard:
		*action = available
	case encounter.ActionReaction:
		*reaction = available
	case encounter.ActionBonus:
		*bonus = available
	case encounter.ActionLegendary:
		return fmt.Errorf("%w: no legendary actions", ErrUnsupported)
	default:
		return fmt.Errorf("%w: unknown action type %q", ErrInvalidRequest, a.Type)
	}
	return nil
}

// AddConditions applies conds, and the conditions they imply, to target.
// A condition the target already carries is left unchanged.
func (e *Engine) AddConditions(ctx context.Context, target int, conds []condition.Condition) error {
	for _, c := range conds {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: condition name is empty", ErrInvalidRequest)
		}
		if err := c.Expiry.Validate(); err != nil {
			return fmt.Errorf("%w: condition %q: %v", ErrInvalidRequest, c.Name, err)
		}
	}
	return e.mutate(ctx, "add_conditions", func(g *encounter.Game) error {
		p, err := lookup(g, target)
		if err != nil {
			return err
		}
		var existing *[]condition.Condition
		switch v := p.(type) {
		case *encounter.Monster:
			existing = &v.Conditions
		case *encounter.Player:
			existing = &v.Conditions
		default:
			return fmt.Errorf("%w: %s cannot carry conditions", ErrUnsupported, p.Kind())
		}
		for _, c := range conds {
			*existing = addCondition(*existing, c)
			for _, implied := range c.Implications() {
				*existing = addCondition(*existing, implied)
			}
		}
		return nil
	})
}

func monster(g *encounter.Game, id int, command string) (*encounter.Monster, error) {
	p, err := lookup(g, id)
	if err != nil {
		return nil, err
	}
	m, ok := p.(*encounter.Monster)
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s a %s", ErrUnsupported, command, p.Kind())
	}
	return m, nil
}

func addCondition(cs []condition.Condition, c condition.Condition) []condition.Condition {
	if slices.ContainsFunc(cs, func(have condition.Condition) bool { return have.Name == c.Name }) {
		return cs
	}
	return append(cs, c)
}
