package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/cory-johannsen/initiative/internal/client"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/game/gametime"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	mockenginev1 "github.com/cory-johannsen/initiative/internal/gameserver/enginev1/mock"
	"github.com/cory-johannsen/initiative/internal/notify"
)

func newClient(t *testing.T) (*client.Client, *mockenginev1.MockEngineClient, *notify.Box) {
	t.Helper()
	ctrl := gomock.NewController(t)
	engine := mockenginev1.NewMockEngineClient(ctrl)
	box := &notify.Box{}
	return client.New(engine, box, zaptest.NewLogger(t)), engine, box
}

func TestClient_NextTurn_Success(t *testing.T) {
	c, engine, box := newClient(t)
	engine.EXPECT().NextTurn(gomock.Any(), gomock.Any()).Return(&emptypb.Empty{}, nil)

	require.NoError(t, c.NextTurn(context.Background()))
	_, shown := box.Current()
	assert.False(t, shown)
}

func TestClient_FailureIsReportedOnceAndReturned(t *testing.T) {
	c, engine, box := newClient(t)
	rejected := status.Error(codes.FailedPrecondition, "nothing to undo")
	engine.EXPECT().Undo(gomock.Any(), gomock.Any()).Return(nil, rejected).Times(1)

	var notifications int
	box.Subscribe(func(*notify.Message) { notifications++ })

	err := c.Undo(context.Background())
	require.Error(t, err)

	var cmdErr *client.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, client.CmdUndo, cmdErr.Command)
	assert.Equal(t, codes.FailedPrecondition, status.Code(errors.Unwrap(err)))

	msg, ok := box.Current()
	require.True(t, ok)
	assert.Equal(t, "Failed to execute undo", msg.Title)
	assert.Equal(t, rejected.Error(), msg.Content)
	assert.Equal(t, notify.SeverityDanger, msg.Severity)
	assert.Equal(t, "OK", msg.AffirmativeButton.Label)
	assert.Equal(t, 1, notifications)
}

func TestClient_GetGame(t *testing.T) {
	c, engine, _ := newClient(t)
	snap, err := enginev1.NewGameSnapshot(&encounter.Game{
		Participants: map[int]encounter.Participant{1: &encounter.Player{Name: "Vex"}},
		Order:        []int{1},
		Round:        2,
	})
	require.NoError(t, err)
	engine.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(snap, nil)

	g, err := c.GetGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, g.Round)
	assert.Equal(t, "Vex", encounter.Name(g.Participants[1]))
}

func TestClient_GetGame_ContractViolationIsDistinct(t *testing.T) {
	c, engine, box := newClient(t)
	engine.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(&enginev1.GameSnapshot{
		Game: []byte(`{"participants":{},"order":[],"round":1,"turn":0}`),
	}, nil)
	_, err := c.GetGame(context.Background())
	require.NoError(t, err, "an empty encounter is a valid snapshot")

	engine.EXPECT().GetGame(gomock.Any(), gomock.Any()).Return(&enginev1.GameSnapshot{
		Game: []byte(`{"participants":{"1":{"type":"dragon"}},"order":[1],"round":1,"turn":0}`),
	}, nil)
	_, err = c.GetGame(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, encounter.ErrContractViolation)

	var cmdErr *client.CommandError
	assert.False(t, errors.As(err, &cmdErr))
	_, shown := box.Current()
	assert.False(t, shown)
}

func TestClient_ForwardsRequests(t *testing.T) {
	c, engine, _ := newClient(t)
	ctx := context.Background()
	conds := []condition.Condition{condition.New(condition.Prone, gametime.Time{Round: 1, Initiative: 12})}

	gomock.InOrder(
		engine.EXPECT().SetAction(gomock.Any(), &enginev1.SetActionRequest{Target: 3, Action: encounter.LegendaryAction(2), Available: false}).
			Return(&emptypb.Empty{}, nil),
		engine.EXPECT().Damage(gomock.Any(), &enginev1.DamageRequest{Target: 3, Damage: encounter.Damage{Type: encounter.DamageHalf, Amount: 9}}).
			Return(&emptypb.Empty{}, nil),
		engine.EXPECT().Heal(gomock.Any(), &enginev1.HealRequest{Target: 3, Healing: encounter.Healing{Type: encounter.HealingHeal, Amount: 4}}).
			Return(&emptypb.Empty{}, nil),
		engine.EXPECT().AddConditions(gomock.Any(), &enginev1.AddConditionsRequest{Target: 3, Conditions: conds}).
			Return(&emptypb.Empty{}, nil),
		engine.EXPECT().NewGame(gomock.Any(), &enginev1.NewGameRequest{HitPoints: enginev1.HitPointsFixed}).Return(&emptypb.Empty{}, nil),
		engine.EXPECT().Redo(gomock.Any(), gomock.Any()).Return(&emptypb.Empty{}, nil),
	)

	require.NoError(t, c.SetAction(ctx, 3, encounter.LegendaryAction(2), false))
	require.NoError(t, c.Damage(ctx, 3, encounter.Damage{Type: encounter.DamageHalf, Amount: 9}))
	require.NoError(t, c.Heal(ctx, 3, encounter.Healing{Type: encounter.HealingHeal, Amount: 4}))
	require.NoError(t, c.AddConditions(ctx, 3, conds))
	require.NoError(t, c.NewGame(ctx, enginev1.HitPointsFixed))
	require.NoError(t, c.Redo(ctx))
}

func TestClient_Roll(t *testing.T) {
	c, engine, _ := newClient(t)
	want := &enginev1.RollResponse{Value: 14, Dice: []dice.DieRoll{{Sides: 20, Result: 11, Keep: true}}}
	engine.EXPECT().Roll(gomock.Any(), &enginev1.RollRequest{Expr: "d20+3"}).Return(want, nil)

	got, err := c.Roll(context.Background(), "d20+3")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	engine.EXPECT().Roll(gomock.Any(), gomock.Any()).Return(nil, status.Error(codes.InvalidArgument, "bad expression"))
	_, err = c.Roll(context.Background(), "x")
	var cmdErr *client.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, client.CmdRoll, cmdErr.Command)
}
