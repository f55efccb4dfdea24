package gameserver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/cory-johannsen/initiative/internal/engine"
	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
)

// EngineService implements the gRPC Engine service over an engine.Engine.
type EngineService struct {
	enginev1.UnimplementedEngineServer
	engine *engine.Engine
	logger *zap.Logger
}

// NewEngineService creates an EngineService.
//
// Precondition: eng and logger must be non-nil.
func NewEngineService(eng *engine.Engine, logger *zap.Logger) *EngineService {
	return &EngineService{engine: eng, logger: logger}
}

var empty = &emptypb.Empty{}

// NewGame implements enginev1.EngineServer. An unset hit-point choice defers
// to the engine's configuration.
func (s *EngineService) NewGame(ctx context.Context, in *enginev1.NewGameRequest) (*emptypb.Empty, error) {
	var opts []engine.GameOption
	switch in.HitPoints {
	case enginev1.HitPointsDefault:
	case enginev1.HitPointsFixed:
		opts = append(opts, engine.RollHitPoints(false))
	case enginev1.HitPointsRolled:
		opts = append(opts, engine.RollHitPoints(true))
	default:
		return nil, s.status("new_game", fmt.Errorf("%w: hit points %q", engine.ErrInvalidRequest, in.HitPoints))
	}
	return s.reply("new_game", s.engine.NewGame(ctx, opts...))
}

// GetGame implements enginev1.EngineServer.
func (s *EngineService) GetGame(_ context.Context, _ *emptypb.Empty) (*enginev1.GameSnapshot, error) {
	g, err := s.engine.Game()
	if err != nil {
		return nil, s.status("get_game", err)
	}
	snap, err := enginev1.NewGameSnapshot(g)
	if err != nil {
		return nil, s.status("get_game", err)
	}
	return snap, nil
}

// NextTurn implements enginev1.EngineServer.
func (s *EngineService) NextTurn(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return s.reply("next_turn", s.engine.NextTurn(ctx))
}

// Undo implements enginev1.EngineServer.
func (s *EngineService) Undo(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return s.reply("undo", s.engine.Undo(ctx))
}

// Redo implements enginev1.EngineServer.
func (s *EngineService) Redo(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	return s.reply("redo", s.engine.Redo(ctx))
}

// Damage implements enginev1.EngineServer.
func (s *EngineService) Damage(ctx context.Context, req *enginev1.DamageRequest) (*emptypb.Empty, error) {
	return s.reply("damage", s.engine.Damage(ctx, req.Target, req.Damage))
}

// Heal implements enginev1.EngineServer.
func (s *EngineService) Heal(ctx context.Context, req *enginev1.HealRequest) (*emptypb.Empty, error) {
	return s.reply("heal", s.engine.Heal(ctx, req.Target, req.Healing))
}

// SetAction implements enginev1.EngineServer.
func (s *EngineService) SetAction(ctx context.Context, req *enginev1.SetActionRequest) (*emptypb.Empty, error) {
	return s.reply("set_action", s.engine.SetAction(ctx, req.Target, req.Action, req.Available))
}

// AddConditions implements enginev1.EngineServer.
func (s *EngineService) AddConditions(ctx context.Context, req *enginev1.AddConditionsRequest) (*emptypb.Empty, error) {
	return s.reply("add_conditions", s.engine.AddConditions(ctx, req.Target, req.Conditions))
}

// Roll implements enginev1.EngineServer.
func (s *EngineService) Roll(_ context.Context, req *enginev1.RollRequest) (*enginev1.RollResponse, error) {
	r, err := s.engine.Roll(req.Expr)
	if err != nil {
		return nil, s.status("roll", err)
	}
	return enginev1.NewRollResponse(r), nil
}

func (s *EngineService) reply(method string, err error) (*emptypb.Empty, error) {
	if err != nil {
		return nil, s.status(method, err)
	}
	return empty, nil
}

// status maps an engine error to a gRPC status.
//
// Postcondition: Returns a non-nil status error carrying err's message.
func (s *EngineService) status(method string, err error) error {
	code := codes.Internal
	switch {
	case errors.Is(err, engine.ErrNoGame), errors.Is(err, engine.ErrUndoEmpty), errors.Is(err, engine.ErrRedoEmpty):
		code = codes.FailedPrecondition
	case errors.Is(err, engine.ErrNoParticipant):
		code = codes.NotFound
	case errors.Is(err, engine.ErrUnsupported), errors.Is(err, engine.ErrInvalidRequest):
		code = codes.InvalidArgument
	}
	if code == codes.Internal {
		s.logger.Error("engine command failed", zap.String("method", method), zap.Error(err))
	} else {
		s.logger.Debug("engine command rejected", zap.String("method", method), zap.Stringer("code", code), zap.Error(err))
	}
	return status.Error(code, err.Error())
}
