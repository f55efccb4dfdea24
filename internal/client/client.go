// Package client is the command façade over the encounter engine. It is the
// only component that requests state mutation; every failed command is
// reported once through a shared Notifier and returned to the caller as a
// *CommandError. Commands are never retried.
package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/cory-johannsen/initiative/internal/game/condition"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
	"github.com/cory-johannsen/initiative/internal/notify"
)

// Command names as reported to the user.
const (
	CmdNewGame       = "new_game"
	CmdGetGame       = "get_game"
	CmdNextTurn      = "next_turn"
	CmdUndo          = "undo"
	CmdRedo          = "redo"
	CmdDamage        = "damage"
	CmdHeal          = "heal"
	CmdSetAction     = "set_action"
	CmdAddConditions = "add_conditions"
	CmdRoll          = "roll"
)

// Notifier receives user-visible failure notifications.
type Notifier interface {
	Show(notify.Message)
}

// CommandError reports a command the engine rejected or that failed in transit.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Client issues engine commands.
type Client struct {
	engine   enginev1.EngineClient
	notifier Notifier
	logger   *zap.Logger
}

// New creates a Client.
//
// Precondition: engine, notifier and logger must be non-nil.
func New(engine enginev1.EngineClient, notifier Notifier, logger *zap.Logger) *Client {
	return &Client{engine: engine, notifier: notifier, logger: logger}
}

// Dial opens a plaintext gRPC connection to the engine at target.
func Dial(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dialing engine %s: %w", target, err)
	}
	return conn, nil
}

func invoke[T any](ctx context.Context, c *Client, command string, fn func(context.Context) (T, error), fields ...zap.Field) (T, error) {
	c.logger.Debug("invoking command", append([]zap.Field{zap.String("command", command)}, fields...)...)
	out, err := fn(ctx)
	if err != nil {
		c.logger.Warn("command failed", zap.String("command", command), zap.Error(err))
		c.notifier.Show(notify.Failure(command, err))
		var zero T
		return zero, &CommandError{Command: command, Err: err}
	}
	return out, nil
}

func empty() *emptypb.Empty { return &emptypb.Empty{} }

// NewGame starts a fresh encounter.
func (c *Client) NewGame(ctx context.Context, hp enginev1.HitPoints) error {
	_, err := invoke(ctx, c, CmdNewGame, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.NewGame(ctx, &enginev1.NewGameRequest{HitPoints: hp})
	}, zap.String("hit_points", string(hp)))
	return err
}

// GetGame fetches the authoritative snapshot.
//
// Postcondition: a snapshot that violates the Game invariants is returned as
// an error wrapping encounter.ErrContractViolation and is not reported through
// the Notifier.
func (c *Client) GetGame(ctx context.Context) (*encounter.Game, error) {
	snap, err := invoke(ctx, c, CmdGetGame, func(ctx context.Context) (*enginev1.GameSnapshot, error) {
		return c.engine.GetGame(ctx, empty())
	})
	if err != nil {
		return nil, err
	}
	g, err := snap.Decode()
	if err != nil {
		c.logger.Warn("malformed snapshot", zap.Error(err))
		return nil, err
	}
	return g, nil
}

// NextTurn advances to the next participant.
func (c *Client) NextTurn(ctx context.Context) error {
	_, err := invoke(ctx, c, CmdNextTurn, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.NextTurn(ctx, empty())
	})
	return err
}

// Undo reverts the most recent mutation.
func (c *Client) Undo(ctx context.Context) error {
	_, err := invoke(ctx, c, CmdUndo, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.Undo(ctx, empty())
	})
	return err
}

// Redo reapplies the most recently undone mutation.
func (c *Client) Redo(ctx context.Context) error {
	_, err := invoke(ctx, c, CmdRedo, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.Redo(ctx, empty())
	})
	return err
}

// Damage applies d to the monster target.
func (c *Client) Damage(ctx context.Context, target int, d encounter.Damage) error {
	_, err := invoke(ctx, c, CmdDamage, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.Damage(ctx, &enginev1.DamageRequest{Target: target, Damage: d})
	}, zap.Int("target", target), zap.String("type", string(d.Type)), zap.Int("amount", d.Amount))
	return err
}

// Heal applies h to the monster target.
func (c *Client) Heal(ctx context.Context, target int, h encounter.Healing) error {
	_, err := invoke(ctx, c, CmdHeal, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.Heal(ctx, &enginev1.HealRequest{Target: target, Healing: h})
	}, zap.Int("target", target), zap.String("type", string(h.Type)), zap.Int("amount", h.Amount))
	return err
}

// SetAction marks an action-economy slot of target available or spent.
func (c *Client) SetAction(ctx context.Context, target int, a encounter.Action, available bool) error {
	_, err := invoke(ctx, c, CmdSetAction, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.SetAction(ctx, &enginev1.SetActionRequest{Target: target, Action: a, Available: available})
	}, zap.Int("target", target), zap.Stringer("action", a), zap.Bool("available", available))
	return err
}

// AddConditions attaches conds to target.
func (c *Client) AddConditions(ctx context.Context, target int, conds []condition.Condition) error {
	_, err := invoke(ctx, c, CmdAddConditions, func(ctx context.Context) (*emptypb.Empty, error) {
		return c.engine.AddConditions(ctx, &enginev1.AddConditionsRequest{Target: target, Conditions: conds})
	}, zap.Int("target", target), zap.Int("count", len(conds)))
	return err
}

// Roll evaluates a dice expression on the engine.
func (c *Client) Roll(ctx context.Context, expr string) (*enginev1.RollResponse, error) {
	return invoke(ctx, c, CmdRoll, func(ctx context.Context) (*enginev1.RollResponse, error) {
		return c.engine.Roll(ctx, &enginev1.RollRequest{Expr: expr})
	}, zap.String("expr", expr))
}
