package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
	"github.com/cory-johannsen/initiative/internal/view"
)

func TestConditionDialog_DefaultInstigator(t *testing.T) {
	gv := newView(t, &fakeCommands{})

	onActive, err := gv.ConditionDialog(2)
	require.NoError(t, err)
	inst, err := onActive.DefaultInstigator()
	require.NoError(t, err)
	assert.Nil(t, inst, "the active participant does not instigate its own conditions")

	onOther, err := gv.ConditionDialog(3)
	require.NoError(t, err)
	inst, err = onOther.DefaultInstigator()
	require.NoError(t, err)
	require.NotNil(t, inst)
	assert.Equal(t, 2, *inst)

	_, err = gv.ConditionDialog(99)
	assert.Error(t, err)
}

func TestConditionDialog_TurnParticipantAndName(t *testing.T) {
	gv := newView(t, &fakeCommands{})
	d, err := gv.ConditionDialog(3)
	require.NoError(t, err)

	assert.Equal(t, 3, d.TurnParticipant(nil))
	ogre := 2
	assert.Equal(t, 2, d.TurnParticipant(&ogre))

	assert.Equal(t, "Ogre", d.ParticipantName(2))
	assert.Equal(t, "Vex", d.ParticipantName(77))
	assert.Len(t, d.Candidates(), 4)
}

func TestConditionDialog_Build_StartsAtActiveTurn(t *testing.T) {
	gv := newView(t, &fakeCommands{})
	d, err := gv.ConditionDialog(3)
	require.NoError(t, err)

	instigator := 2
	conds, err := d.Build(condition.BuildOptions{
		Selected:      []string{condition.Frightened, condition.OtherSelector, condition.Prone},
		CustomName:    "  hexed ",
		DurationType:  condition.Elapsed,
		ElapsedAmount: 1,
		ElapsedUnit:   condition.Minutes,
		Instigator:    &instigator,
	})
	require.NoError(t, err)
	require.Len(t, conds, 3)
	assert.Equal(t, "hexed", conds[2].Name)
	for _, c := range conds {
		assert.Equal(t, gametime.Time{Round: 2, Initiative: 15}, c.StartTime)
		assert.Equal(t, condition.DurationExpiry(10), c.Expiry)
		require.NotNil(t, c.Instigator)
		assert.Equal(t, 2, *c.Instigator)
	}
}

func TestConditionDialog_Apply(t *testing.T) {
	cmds := &fakeCommands{}
	gv := newView(t, cmds)
	d, err := gv.ConditionDialog(3)
	require.NoError(t, err)
	ctx := context.Background()

	conds, err := d.Apply(ctx, condition.BuildOptions{Selected: []string{condition.OtherSelector}, CustomName: "   "})
	require.NoError(t, err)
	assert.Empty(t, conds)
	assert.Empty(t, cmds.added, "an empty selection sends nothing")

	_, err = d.Apply(ctx, condition.BuildOptions{
		Selected:     []string{condition.Blinded},
		DurationType: condition.EndTurn,
	})
	require.NoError(t, err)
	require.Len(t, cmds.added[3], 1)
	assert.Equal(t, condition.NextTurnEndExpiry(), cmds.added[3][0].Expiry)
}

var _ view.ParticipantView = (*view.LairView)(nil)
