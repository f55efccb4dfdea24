package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/initiative/internal/game/encounter"
)

// ErrSavepointNotFound is returned when no savepoint matches a lookup.
var ErrSavepointNotFound = errors.New("savepoint not found")

// Savepoint is a stored encounter snapshot.
type Savepoint struct {
	ID          uuid.UUID
	GameStarted time.Time
	Round       int
	TurnNumber  int
	Game        *encounter.Game
	CreatedAt   time.Time
}

// TurnNumber is a monotonic index of g's active turn within its game.
//
// Postcondition: Returns Round*len(Order) + Turn.
func TurnNumber(g *encounter.Game) int {
	return g.Round*len(g.Order) + g.Turn
}

// SavepointRepository persists engine snapshots, keeping the newest maxCount
// per game. A game is identified by its start time.
type SavepointRepository struct {
	db       *pgxpool.Pool
	maxCount int
}

// NewSavepointRepository creates a SavepointRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; maxCount >= 1.
func NewSavepointRepository(db *pgxpool.Pool, maxCount int) *SavepointRepository {
	return &SavepointRepository{db: db, maxCount: maxCount}
}

// Save stores g and prunes the game's older savepoints beyond maxCount.
//
// Precondition: g must be non-nil and valid.
// Postcondition: Either both the insert and the prune commit or neither does.
func (r *SavepointRepository) Save(ctx context.Context, g *encounter.Game) error {
	snapshot, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating savepoint id: %w", err)
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO savepoints (id, game_started, round, turn_number, snapshot)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, g.GameStarted, g.Round, TurnNumber(g), snapshot,
		); err != nil {
			return fmt.Errorf("inserting savepoint: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM savepoints
			 WHERE game_started = $1 AND id NOT IN (
			     SELECT id FROM savepoints WHERE game_started = $1
			     ORDER BY id DESC LIMIT $2)`,
			g.GameStarted, r.maxCount,
		); err != nil {
			return fmt.Errorf("pruning savepoints: %w", err)
		}
		return nil
	})
}

// Latest returns the most recently stored savepoint of any game.
//
// Postcondition: Returns the Savepoint or ErrSavepointNotFound.
func (r *SavepointRepository) Latest(ctx context.Context) (Savepoint, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, game_started, round, turn_number, snapshot, created_at
		 FROM savepoints ORDER BY id DESC LIMIT 1`)
	sp, err := scanSavepoint(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Savepoint{}, ErrSavepointNotFound
	}
	return sp, err
}

// ListForGame returns the savepoints of the game started at gameStarted,
// newest first.
func (r *SavepointRepository) ListForGame(ctx context.Context, gameStarted time.Time) ([]Savepoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, game_started, round, turn_number, snapshot, created_at
		 FROM savepoints WHERE game_started = $1 ORDER BY id DESC`,
		gameStarted,
	)
	if err != nil {
		return nil, fmt.Errorf("querying savepoints: %w", err)
	}
	defer rows.Close()

	var out []Savepoint
	for rows.Next() {
		sp, err := scanSavepoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating savepoints: %w", err)
	}
	return out, nil
}

func scanSavepoint(row pgx.Row) (Savepoint, error) {
	var (
		sp       Savepoint
		snapshot []byte
	)
	if err := row.Scan(&sp.ID, &sp.GameStarted, &sp.Round, &sp.TurnNumber, &snapshot, &sp.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Savepoint{}, err
		}
		return Savepoint{}, fmt.Errorf("scanning savepoint: %w", err)
	}
	var g encounter.Game
	if err := json.Unmarshal(snapshot, &g); err != nil {
		return Savepoint{}, fmt.Errorf("decoding savepoint %s: %w", sp.ID, err)
	}
	sp.Game = &g
	return sp, nil
}
