// Package engine is the authoritative encounter engine. It owns the current
// Game, applies every mutation to a copy, and keeps undo and redo stacks of
// whole snapshots.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/initiative/internal/game/dice"
	"github.com/cory-johannsen/initiative/internal/game/encounter"
	"github.com/cory-johannsen/initiative/internal/roster"
)

var (
	// ErrNoGame is returned before the first NewGame.
	ErrNoGame = errors.New("no game in progress")
	// ErrNoParticipant is returned for a target id not in the game.
	ErrNoParticipant = errors.New("no such participant")
	// ErrUnsupported is returned when a request does not apply to the target's kind.
	ErrUnsupported = errors.New("unsupported for participant")
	// ErrInvalidRequest is returned for malformed request payloads.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUndoEmpty is returned when there is no earlier snapshot.
	ErrUndoEmpty = errors.New("nothing to undo")
	// ErrRedoEmpty is returned when there is no undone snapshot.
	ErrRedoEmpty = errors.New("nothing to redo")
)

// Spawner creates the participants of a new game.
type Spawner interface {
	Spawn(roller roster.Roller, opts roster.SpawnOptions) (*encounter.Game, error)
}

// SavepointSink records snapshots after each mutation.
type SavepointSink interface {
	Save(ctx context.Context, g *encounter.Game) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for turn timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSavepoints records every resulting snapshot in sink. Sink failures are
// logged and do not fail the command.
func WithSavepoints(sink SavepointSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithRolledHitPoints sets whether NewGame rolls monster hit dice when the
// caller does not choose.
func WithRolledHitPoints(rolled bool) Option {
	return func(e *Engine) { e.spawnOpts.RollHitPoints = rolled }
}

// GameOption adjusts a single NewGame call.
type GameOption func(*roster.SpawnOptions)

// RollHitPoints chooses, for one game, between rolled hit dice and the
// roster's fixed hit points.
func RollHitPoints(rolled bool) GameOption {
	return func(o *roster.SpawnOptions) { o.RollHitPoints = rolled }
}

// Engine serializes all commands on one mutex. Safe for concurrent use.
type Engine struct {
	spawner   Spawner
	roller    *dice.Roller
	logger    *zap.Logger
	sink      SavepointSink
	now       func() time.Time
	spawnOpts roster.SpawnOptions

	mu sync.Mutex
	// undo holds every snapshot since NewGame; the last is current.
	undo []*encounter.Game
	redo []*encounter.Game
}

// New creates an Engine with no game.
//
// Precondition: spawner, roller and logger must be non-nil.
func New(spawner Spawner, roller *dice.Roller, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		spawner: spawner,
		roller:  roller,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewGame discards all history and starts a fresh encounter from the roster.
func (e *Engine) NewGame(ctx context.Context, opts ...GameOption) error {
	spawnOpts := e.spawnOpts
	for _, opt := range opts {
		opt(&spawnOpts)
	}
	g, err := e.spawner.Spawn(e.roller, spawnOpts)
	if err != nil {
		return fmt.Errorf("spawning game: %w", err)
	}
	now := e.now().UTC()
	g.GameStarted, g.TurnStarted = now, now
	if err := g.Validate(); err != nil {
		return fmt.Errorf("spawned game: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.undo = []*encounter.Game{g}
	e.redo = nil
	e.logger.Info("new game",
		zap.Int("participants", len(g.Participants)),
		zap.Bool("rolled_hp", spawnOpts.RollHitPoints),
	)
	e.save(ctx, g)
	return nil
}

// Restore discards all history and resumes from g.
//
// Precondition: g must satisfy encounter.Game.Validate.
func (e *Engine) Restore(g *encounter.Game) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("restoring game: %w", err)
	}
	snapshot, err := g.Clone()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.undo = []*encounter.Game{snapshot}
	e.redo = nil
	e.logger.Info("game restored",
		zap.Int("round", snapshot.Round),
		zap.Int("turn", snapshot.Turn),
	)
	return nil
}

// Game returns a copy of the current snapshot.
func (e *Engine) Game() (*encounter.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undo) == 0 {
		return nil, ErrNoGame
	}
	return e.undo[len(e.undo)-1].Clone()
}

// Undo restores the snapshot before the last mutation.
func (e *Engine) Undo(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undo) == 0 {
		return ErrNoGame
	}
	if len(e.undo) == 1 {
		return ErrUndoEmpty
	}
	top := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, top)
	e.logger.Debug("undo", zap.Int("undo_depth", len(e.undo)), zap.Int("redo_depth", len(e.redo)))
	e.save(ctx, e.undo[len(e.undo)-1])
	return nil
}

// Redo reapplies the most recently undone mutation.
func (e *Engine) Redo(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undo) == 0 {
		return ErrNoGame
	}
	if len(e.redo) == 0 {
		return ErrRedoEmpty
	}
	top := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, top)
	e.logger.Debug("redo", zap.Int("undo_depth", len(e.undo)), zap.Int("redo_depth", len(e.redo)))
	e.save(ctx, top)
	return nil
}

// Roll evaluates a dice expression.
func (e *Engine) Roll(expr string) (dice.RollResult, error) {
	r, err := e.roller.RollExpr(expr)
	if err != nil {
		return dice.RollResult{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return r, nil
}

// mutate applies fn to a copy of the current snapshot and, on success, makes
// the copy current and clears the redo stack.
func (e *Engine) mutate(ctx context.Context, command string, fn func(g *encounter.Game) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undo) == 0 {
		return ErrNoGame
	}
	next, err := e.undo[len(e.undo)-1].Clone()
	if err != nil {
		return err
	}
	if err := fn(next); err != nil {
		e.logger.Debug("command rejected", zap.String("command", command), zap.Error(err))
		return err
	}
	e.undo = append(e.undo, next)
	e.redo = nil
	e.logger.Debug("command applied",
		zap.String("command", command),
		zap.Int("round", next.Round),
		zap.Int("turn", next.Turn),
	)
	e.save(ctx, next)
	return nil
}

func (e *Engine) save(ctx context.Context, g *encounter.Game) {
	if e.sink == nil {
		return
	}
	if err := e.sink.Save(ctx, g); err != nil {
		e.logger.Warn("saving savepoint", zap.Error(err))
	}
}

func lookup(g *encounter.Game, id int) (encounter.Participant, error) {
	p, ok := g.Participants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoParticipant, id)
	}
	return p, nil
}
