package encounter

import (
	"fmt"

	"github.com/cory-johannsen/initiative/internal/game/condition"
)

// Kind is the variant tag of a Participant.
type Kind string

const (
	KindMonster Kind = "monster"
	KindPlayer  Kind = "player"
	KindLair    Kind = "lair"
)

// LairInitiative is the fixed initiative score of a lair.
const LairInitiative = 20

// Participant is one of *Monster, *Player or *Lair. The set is closed: the
// marker method is unexported, and every consumer matches all three with a
// type switch.
type Participant interface {
	Kind() Kind
	participant()
}

// Monster is a creature run by the game master.
type Monster struct {
	Name                 string                `json:"name"`
	Subtype              string                `json:"subtype,omitempty"`
	Stats                Stats                 `json:"stats"`
	CR                   int                   `json:"cr"`
	AC                   int                   `json:"ac"`
	InitiativeBonus      int                   `json:"initiativeBonus"`
	SmallPortrait        string                `json:"smallPortrait,omitempty"`
	FullPortrait         string                `json:"fullPortrait,omitempty"`
	HitDice              string                `json:"hitDice,omitempty"`
	Initiative           int                   `json:"initiative"`
	Tiebreaker           int                   `json:"tiebreaker"`
	Action               bool                  `json:"action"`
	Reaction             bool                  `json:"reaction"`
	BonusAction          bool                  `json:"bonusAction"`
	HP                   int                   `json:"hp"`
	TempHP               int                   `json:"tempHp"`
	MaxHP                int                   `json:"maxHp"`
	LegendaryActions     []bool                `json:"legendaryActions"`
	LegendaryActionCount int                   `json:"legendaryActionCount"`
	Notes                string                `json:"notes,omitempty"`
	Conditions           []condition.Condition `json:"conditions"`
	IsHostile            bool                  `json:"isHostile"`
}

// Kind returns KindMonster.
func (*Monster) Kind() Kind { return KindMonster }
func (*Monster) participant() {}

// LegendaryActionsRemaining counts the legendary actions still available.
func (m *Monster) LegendaryActionsRemaining() int {
	n := 0
	for _, available := range m.LegendaryActions {
		if available {
			n++
		}
	}
	return n
}

// HasCondition reports whether m carries a condition named name.
func (m *Monster) HasCondition(name string) bool {
	return hasCondition(m.Conditions, name)
}

// Player is a player character.
type Player struct {
	Name            string                `json:"name"`
	Classes         []Class               `json:"classes"`
	Stats           Stats                 `json:"stats"`
	AC              int                   `json:"ac"`
	InitiativeBonus int                   `json:"initiativeBonus"`
	SmallPortrait   string                `json:"smallPortrait,omitempty"`
	FullPortrait    string                `json:"fullPortrait,omitempty"`
	Initiative      int                   `json:"initiative"`
	Tiebreaker      int                   `json:"tiebreaker"`
	Action          bool                  `json:"action"`
	Reaction        bool                  `json:"reaction"`
	BonusAction     bool                  `json:"bonusAction"`
	Notes           string                `json:"notes,omitempty"`
	Conditions      []condition.Condition `json:"conditions"`
}

// Kind returns KindPlayer.
func (*Player) Kind() Kind { return KindPlayer }
func (*Player) participant() {}

// TotalLevel sums the player's class levels.
func (p *Player) TotalLevel() int {
	total := 0
	for _, c := range p.Classes {
		total += c.Level
	}
	return total
}

// Lair is the environment's own turn at initiative 20.
type Lair struct {
	Name          string `json:"name"`
	Notes         string `json:"notes,omitempty"`
	Action        bool   `json:"action"`
	SmallPortrait string `json:"smallPortrait,omitempty"`
	FullPortrait  string `json:"fullPortrait,omitempty"`
}

// Kind returns KindLair.
func (*Lair) Kind() Kind { return KindLair }
func (*Lair) participant() {}

// Name returns the display name of p.
func Name(p Participant) string {
	switch v := p.(type) {
	case *Monster:
		return v.Name
	case *Player:
		return v.Name
	case *Lair:
		return v.Name
	default:
		panic(unknownVariant(p))
	}
}

// Initiative returns the initiative score of p. A lair always acts at LairInitiative.
func Initiative(p Participant) int {
	switch v := p.(type) {
	case *Monster:
		return v.Initiative
	case *Player:
		return v.Initiative
	case *Lair:
		return LairInitiative
	default:
		panic(unknownVariant(p))
	}
}

// Tiebreaker returns the tiebreaker used to order equal initiatives. A lair
// loses every tie.
func Tiebreaker(p Participant) int {
	switch v := p.(type) {
	case *Monster:
		return v.Tiebreaker
	case *Player:
		return v.Tiebreaker
	case *Lair:
		return minTiebreaker
	default:
		panic(unknownVariant(p))
	}
}

const minTiebreaker = -1 << 31

func hasCondition(cs []condition.Condition, name string) bool {
	for _, c := range cs {
		if c.Name == name {
			return true
		}
	}
	return false
}

func unknownVariant(p Participant) string {
	return fmt.Sprintf("encounter: unknown participant variant %T", p)
}
