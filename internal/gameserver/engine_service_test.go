package gameserver_test

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/cory-johannsen/initiative/internal/client"
	"github.com/cory-johannsen/initiative/internal/engine"
	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/gameserver"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/notify"
	"github.com/cory-johannsen/initiative/internal/roster"
	"github.com/cory-johannsen/initiative/internal/testutil"
)

// testEngineServer starts an in-process engine server over the crypt roster and
// returns a client façade connected to it.
func testEngineServer(t *testing.T) (*client.Client, *notify.Box) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	r, err := roster.LoadFile("../roster/testdata/crypt.yaml")
	require.NoError(t, err)
	eng := engine.New(r, dice.NewLoggedRoller(testutil.NewSequenceSource(9), logger), logger)

	lis := bufconn.Listen(1 << 20)

	grpcServer := grpc.NewServer()
	enginev1.RegisterEngineServer(grpcServer, gameserver.NewEngineService(eng, logger))

	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(func() { grpcServer.Stop() })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	box := &notify.Box{}
	return client.New(enginev1.NewEngineClient(conn), box, logger), box
}

func firstMonster(t *testing.T, g *encounter.Game) (int, *encounter.Monster) {
	t.Helper()
	for _, id := range g.Order {
		if m, ok := g.Participants[id].(*encounter.Monster); ok {
			return id, m
		}
	}
	t.Fatal("no monster in game")
	return 0, nil
}

func TestEngineService_RoundTrip(t *testing.T) {
	c, box := testEngineServer(t)
	ctx := context.Background()

	require.NoError(t, c.NewGame(ctx, enginev1.HitPointsDefault))
	g, err := c.GetGame(ctx)
	require.NoError(t, err)
	require.Len(t, g.Participants, 6)
	assert.Equal(t, 1, g.Round)

	id, m := firstMonster(t, g)
	require.NoError(t, c.Damage(ctx, id, encounter.Damage{Type: encounter.DamageNormal, Amount: 1}))
	ts, err := encounter.Resolve(g)
	require.NoError(t, err)
	require.NoError(t, c.AddConditions(ctx, id, []condition.Condition{
		condition.New(condition.Unconscious, ts.Now()),
	}))
	require.NoError(t, c.SetAction(ctx, id, encounter.ReactionAction(), false))
	require.NoError(t, c.NextTurn(ctx))

	g, err = c.GetGame(ctx)
	require.NoError(t, err)
	got := g.Participants[id].(*encounter.Monster)
	assert.Equal(t, m.HP-1, got.HP)
	assert.True(t, got.HasCondition(condition.Unconscious))
	assert.True(t, got.HasCondition(condition.Prone))
	assert.Equal(t, 1, g.Turn)

	require.NoError(t, c.Undo(ctx))
	require.NoError(t, c.Redo(ctx))

	roll, err := c.Roll(ctx, "2d6+1")
	require.NoError(t, err)
	assert.Equal(t, 13, roll.Value)
	assert.Len(t, roll.Dice, 2)

	_, shown := box.Current()
	assert.False(t, shown)
}

func TestEngineService_ErrorCodes(t *testing.T) {
	c, box := testEngineServer(t)
	ctx := context.Background()

	err := c.NextTurn(ctx)
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	msg, shown := box.Current()
	require.True(t, shown)
	assert.Equal(t, "Failed to execute "+client.CmdNextTurn, msg.Title)

	require.NoError(t, c.NewGame(ctx, enginev1.HitPointsDefault))
	assert.Equal(t, codes.FailedPrecondition, status.Code(c.Undo(ctx)))
	assert.Equal(t, codes.NotFound, status.Code(c.Damage(ctx, 99, encounter.Damage{Type: encounter.DamageKill})))
	assert.Equal(t, codes.InvalidArgument, status.Code(c.Damage(ctx, 1, encounter.Damage{Type: encounter.DamageNormal, Amount: -3})))

	_, err = c.Roll(ctx, "d1")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestEngineService_NewGame_HitPoints(t *testing.T) {
	c, _ := testEngineServer(t)
	ctx := context.Background()

	skeletonHP := func() []int {
		g, err := c.GetGame(ctx)
		require.NoError(t, err)
		var hp []int
		for _, id := range g.Order {
			if m, ok := g.Participants[id].(*encounter.Monster); ok && strings.HasPrefix(m.Name, "Skeleton") {
				hp = append(hp, m.MaxHP)
			}
		}
		return hp
	}

	require.NoError(t, c.NewGame(ctx, enginev1.HitPointsFixed))
	assert.Equal(t, []int{13, 13}, skeletonHP())

	// every die lands on its maximum: 8 + 8 + 4
	require.NoError(t, c.NewGame(ctx, enginev1.HitPointsRolled))
	assert.Equal(t, []int{20, 20}, skeletonHP())

	err := c.NewGame(ctx, enginev1.HitPoints("average"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
