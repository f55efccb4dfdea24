package encounter

import "fmt"

// ActionType names one slot of the action economy.
type ActionType string

const (
	ActionStandard  ActionType = "standard"
	ActionReaction  ActionType = "reaction"
	ActionBonus     ActionType = "bonus"
	ActionLegendary ActionType = "legendary"
)

// Action identifies an action-economy slot. Index selects the legendary action
// and is ignored for the other types.
type Action struct {
	Type  ActionType `json:"type"`
	Index int        `json:"index,omitempty"`
}

// StandardAction returns the standard action slot.
func StandardAction() Action { return Action{Type: ActionStandard} }

// ReactionAction returns the reaction slot.
func ReactionAction() Action { return Action{Type: ActionReaction} }

// BonusAction returns the bonus action slot.
func BonusAction() Action { return Action{Type: ActionBonus} }

// LegendaryAction returns the legendary action slot at index.
func LegendaryAction(index int) Action { return Action{Type: ActionLegendary, Index: index} }

func (a Action) String() string {
	if a.Type == ActionLegendary {
		return fmt.Sprintf("%s[%d]", a.Type, a.Index)
	}
	return string(a.Type)
}

// DamageType is the discriminator of a Damage request.
type DamageType string

const (
	DamageNormal DamageType = "damage"
	DamageHalf   DamageType = "halfDamage"
	DamageDouble DamageType = "doubleDamage"
	DamageKill   DamageType = "kill"
)

// Damage is a request to hurt a participant. Amount is unused for DamageKill.
type Damage struct {
	Type   DamageType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

// Effective returns the hit points the damage removes before temporary HP:
// half rounds down, double doubles. Kill reports -1.
func (d Damage) Effective() int {
	switch d.Type {
	case DamageHalf:
		return d.Amount / 2
	case DamageDouble:
		return d.Amount * 2
	case DamageKill:
		return -1
	default:
		return d.Amount
	}
}

// Validate checks the request is well formed.
func (d Damage) Validate() error {
	switch d.Type {
	case DamageNormal, DamageHalf, DamageDouble:
		if d.Amount < 0 {
			return fmt.Errorf("damage amount must be >= 0, got %d", d.Amount)
		}
		return nil
	case DamageKill:
		return nil
	default:
		return fmt.Errorf("unknown damage type %q", d.Type)
	}
}

// HealingType is the discriminator of a Healing request.
type HealingType string

const (
	HealingHeal      HealingType = "heal"
	HealingSetHP     HealingType = "setHp"
	HealingSetTempHP HealingType = "setTempHp"
)

// Healing is a request to restore or set a participant's hit points.
type Healing struct {
	Type   HealingType `json:"type"`
	Amount int         `json:"amount"`
}

// Validate checks the request is well formed.
func (h Healing) Validate() error {
	switch h.Type {
	case HealingHeal, HealingSetHP, HealingSetTempHP:
		if h.Amount < 0 {
			return fmt.Errorf("healing amount must be >= 0, got %d", h.Amount)
		}
		return nil
	default:
		return fmt.Errorf("unknown healing type %q", h.Type)
	}
}
