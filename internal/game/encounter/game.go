// Package encounter holds the read-side model of a combat encounter: the
// authoritative engine's Game snapshot, its closed set of participant variants,
// and the turn engine that derives round, turn and active participant from it.
package encounter

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Game is a snapshot of an encounter owned by the authoritative engine.
//
// Invariant (engine contract): Order is a permutation of the keys of
// Participants; 0 <= Turn < len(Order); Round >= 1.
type Game struct {
	Participants map[int]Participant
	Order        []int
	Round        int
	Turn         int
	GameStarted  time.Time
	TurnStarted  time.Time
}

// Validate checks the engine contract on g. It never repairs the snapshot.
//
// Postcondition: Returns nil, or an error wrapping ErrContractViolation.
func (g *Game) Validate() error {
	if g.Round < 1 {
		return fmt.Errorf("%w: round %d", ErrInvalidRound, g.Round)
	}
	if len(g.Order) != len(g.Participants) {
		return fmt.Errorf("%w: %d ids in order, %d participants",
			ErrInconsistentOrder, len(g.Order), len(g.Participants))
	}
	seen := make(map[int]bool, len(g.Order))
	for _, id := range g.Order {
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %d", ErrInconsistentOrder, id)
		}
		seen[id] = true
		p, ok := g.Participants[id]
		if !ok {
			return fmt.Errorf("%w: id %d has no participant", ErrInconsistentOrder, id)
		}
		if p == nil {
			return fmt.Errorf("%w: id %d is nil", ErrUnknownParticipant, id)
		}
	}
	return nil
}

// IDs returns the participant ids in ascending order.
func (g *Game) IDs() []int {
	ids := make([]int, 0, len(g.Participants))
	for id := range g.Participants {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep copy of g, so an engine can keep history snapshots.
func (g *Game) Clone() (*Game, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("cloning game: %w", err)
	}
	var out Game
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cloning game: %w", err)
	}
	return &out, nil
}

type participantJSON struct {
	Type    Kind     `json:"type"`
	Monster *Monster `json:"monster,omitempty"`
	Player  *Player  `json:"player,omitempty"`
	Lair    *Lair    `json:"lair,omitempty"`
}

type gameJSON struct {
	Participants map[int]participantJSON `json:"participants"`
	Order        []int                   `json:"order"`
	Round        int                     `json:"round"`
	Turn         int                     `json:"turn"`
	GameStarted  time.Time               `json:"gameStarted"`
	TurnStarted  time.Time               `json:"turnStarted"`
}

// MarshalParticipant encodes p with its variant tag.
func MarshalParticipant(p Participant) ([]byte, error) {
	pj, err := toParticipantJSON(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pj)
}

// UnmarshalParticipant decodes a tagged participant.
//
// Postcondition: Returns an error wrapping ErrUnknownParticipant for any tag
// other than monster, player or lair, or when the tag's payload is missing.
func UnmarshalParticipant(data []byte) (Participant, error) {
	var pj participantJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, fmt.Errorf("decoding participant: %w", err)
	}
	return fromParticipantJSON(pj)
}

func toParticipantJSON(p Participant) (participantJSON, error) {
	switch v := p.(type) {
	case *Monster:
		return participantJSON{Type: KindMonster, Monster: v}, nil
	case *Player:
		return participantJSON{Type: KindPlayer, Player: v}, nil
	case *Lair:
		return participantJSON{Type: KindLair, Lair: v}, nil
	default:
		return participantJSON{}, fmt.Errorf("%w: %T", ErrUnknownParticipant, p)
	}
}

func fromParticipantJSON(pj participantJSON) (Participant, error) {
	switch pj.Type {
	case KindMonster:
		if pj.Monster != nil {
			return pj.Monster, nil
		}
	case KindPlayer:
		if pj.Player != nil {
			return pj.Player, nil
		}
	case KindLair:
		if pj.Lair != nil {
			return pj.Lair, nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, pj.Type)
	}
	return nil, fmt.Errorf("%w: %q without payload", ErrUnknownParticipant, pj.Type)
}

// MarshalJSON encodes g in the engine's wire format.
func (g Game) MarshalJSON() ([]byte, error) {
	out := gameJSON{
		Participants: make(map[int]participantJSON, len(g.Participants)),
		Order:        g.Order,
		Round:        g.Round,
		Turn:         g.Turn,
		GameStarted:  g.GameStarted,
		TurnStarted:  g.TurnStarted,
	}
	if out.Order == nil {
		out.Order = []int{}
	}
	for id, p := range g.Participants {
		pj, err := toParticipantJSON(p)
		if err != nil {
			return nil, fmt.Errorf("participant %d: %w", id, err)
		}
		out.Participants[id] = pj
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the engine's wire format. Unknown participant tags are
// contract violations, not defaults.
func (g *Game) UnmarshalJSON(data []byte) error {
	var in gameJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	participants := make(map[int]Participant, len(in.Participants))
	for id, pj := range in.Participants {
		p, err := fromParticipantJSON(pj)
		if err != nil {
			return fmt.Errorf("participant %d: %w", id, err)
		}
		participants[id] = p
	}
	*g = Game{
		Participants: participants,
		Order:        in.Order,
		Round:        in.Round,
		Turn:         in.Turn,
		GameStarted:  in.GameStarted,
		TurnStarted:  in.TurnStarted,
	}
	return nil
}
