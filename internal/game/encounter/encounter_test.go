package encounter_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
)

func sampleGame() *encounter.Game {
	return &encounter.Game{
		Participants: map[int]encounter.Participant{
			1: &encounter.Monster{Name: "Goblin", CR: 2, HP: 7, MaxHP: 7, Initiative: 14},
			2: &encounter.Player{Name: "Ayla", Initiative: 18, Classes: []encounter.Class{{Name: "wizard", Level: 3}}},
			3: &encounter.Lair{Name: "Cavern", Action: true},
		},
		Order:       []int{3, 2, 1},
		Round:       2,
		Turn:        1,
		GameStarted: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		TurnStarted: time.Date(2025, 1, 2, 3, 5, 0, 0, time.UTC),
	}
}

func TestResolve_ActiveParticipant(t *testing.T) {
	g := sampleGame()
	s, err := encounter.Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, 2, s.ActiveID)
	assert.Equal(t, 18, s.ActiveInitiative)
	assert.Equal(t, 12, s.ElapsedSeconds)
	assert.Equal(t, gametime.Time{Round: 2, Initiative: 18}, s.Now())
}

func TestResolve_LairInitiativeIsFixed(t *testing.T) {
	g := sampleGame()
	g.Turn = 0
	s, err := encounter.Resolve(g)
	require.NoError(t, err)
	assert.Equal(t, encounter.LairInitiative, s.ActiveInitiative)
}

func TestResolve_InvalidTurnFails(t *testing.T) {
	for _, turn := range []int{-1, 3, 100} {
		g := sampleGame()
		g.Turn = turn
		_, err := encounter.Resolve(g)
		require.Error(t, err, "turn=%d", turn)
		assert.True(t, errors.Is(err, encounter.ErrInvalidTurn))
		assert.True(t, errors.Is(err, encounter.ErrContractViolation))
	}
}

func TestResolve_EmptyOrderFails(t *testing.T) {
	_, err := encounter.Resolve(&encounter.Game{Participants: map[int]encounter.Participant{}, Round: 1})
	assert.ErrorIs(t, err, encounter.ErrInvalidTurn)
}

func TestResolve_ActiveIsOrderAtTurn_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		perm := rapid.Permutation(rangeInts(n)).Draw(rt, "order")
		turn := rapid.IntRange(-3, n+3).Draw(rt, "turn")

		g := &encounter.Game{Participants: map[int]encounter.Participant{}, Order: perm, Round: 1, Turn: turn}
		for _, id := range perm {
			g.Participants[id] = &encounter.Player{Name: "p", Initiative: id}
		}

		s, err := encounter.Resolve(g)
		if turn < 0 || turn >= n {
			assert.ErrorIs(rt, err, encounter.ErrInvalidTurn)
			return
		}
		require.NoError(rt, err)
		assert.Equal(rt, perm[turn], s.ActiveID)
	})
}

func rangeInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 10
	}
	return out
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sampleGame().Validate())

	dup := sampleGame()
	dup.Order = []int{1, 1, 2}
	assert.ErrorIs(t, dup.Validate(), encounter.ErrInconsistentOrder)

	missing := sampleGame()
	missing.Order = []int{1, 2, 9}
	assert.ErrorIs(t, missing.Validate(), encounter.ErrInconsistentOrder)

	short := sampleGame()
	short.Order = []int{1, 2}
	assert.ErrorIs(t, short.Validate(), encounter.ErrContractViolation)

	round := sampleGame()
	round.Round = 0
	assert.ErrorIs(t, round.Validate(), encounter.ErrInvalidRound)
}

func TestGame_JSONRoundTrip(t *testing.T) {
	g := sampleGame()
	m := g.Participants[1].(*encounter.Monster)
	m.Conditions = []condition.Condition{condition.New(condition.Prone, gametime.Time{Round: 1, Initiative: 14}).WithInstigator(2)}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var got encounter.Game
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, g.Order, got.Order)
	assert.Equal(t, g.Round, got.Round)
	assert.True(t, g.GameStarted.Equal(got.GameStarted))
	require.IsType(t, &encounter.Monster{}, got.Participants[1])
	assert.Equal(t, m.Conditions, got.Participants[1].(*encounter.Monster).Conditions)
	assert.IsType(t, &encounter.Player{}, got.Participants[2])
	assert.IsType(t, &encounter.Lair{}, got.Participants[3])
}

func TestGame_UnmarshalUnknownVariant(t *testing.T) {
	data := []byte(`{"participants":{"1":{"type":"dragonlord","lair":{"name":"x"}}},"order":[1],"round":1,"turn":0}`)
	var g encounter.Game
	err := json.Unmarshal(data, &g)
	assert.ErrorIs(t, err, encounter.ErrUnknownParticipant)
	assert.ErrorIs(t, err, encounter.ErrContractViolation)
}

func TestGame_UnmarshalMissingPayload(t *testing.T) {
	data := []byte(`{"participants":{"1":{"type":"monster"}},"order":[1],"round":1,"turn":0}`)
	var g encounter.Game
	assert.ErrorIs(t, json.Unmarshal(data, &g), encounter.ErrUnknownParticipant)
}

func TestGame_Clone_IsDeep(t *testing.T) {
	g := sampleGame()
	c, err := g.Clone()
	require.NoError(t, err)
	c.Participants[1].(*encounter.Monster).HP = 0
	assert.Equal(t, 7, g.Participants[1].(*encounter.Monster).HP)
}

func TestIDs_Sorted(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, sampleGame().IDs())
}
