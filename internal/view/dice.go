package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/cory-johannsen/initiative/internal/gameserver/enginev1"
)

// Roller evaluates dice expressions on the engine.
type Roller interface {
	Roll(ctx context.Context, expr string) (*enginev1.RollResponse, error)
}

// HistoryItem records one roll attempt. Exactly one of Roll and Error is set.
type HistoryItem struct {
	Expression string                 `json:"expression"`
	Roll       *enginev1.RollResponse `json:"roll,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// HistoryStore persists roll history beyond the process.
type HistoryStore interface {
	Append(ctx context.Context, item HistoryItem) error
	List(ctx context.Context) ([]HistoryItem, error)
	Clear(ctx context.Context) error
}

// DiceView rolls dice and keeps the history of attempts, failed ones
// included.
type DiceView struct {
	roller Roller
	store  HistoryStore

	mu      sync.Mutex
	history []HistoryItem
}

// NewDiceView creates a DiceView. store may be nil.
func NewDiceView(roller Roller, store HistoryStore) *DiceView {
	return &DiceView{roller: roller, store: store}
}

// Load replaces the in-memory history with the stored one.
func (v *DiceView) Load(ctx context.Context) error {
	if v.store == nil {
		return nil
	}
	items, err := v.store.List(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = items
	return nil
}

// Roll evaluates expr and records the outcome. A failed roll is recorded
// with its error and the error is returned.
func (v *DiceView) Roll(ctx context.Context, expr string) (*enginev1.RollResponse, error) {
	roll, err := v.roller.Roll(ctx, expr)
	item := HistoryItem{Expression: expr, Roll: roll}
	if err != nil {
		item = HistoryItem{Expression: expr, Error: err.Error()}
	}
	v.mu.Lock()
	v.history = append(v.history, item)
	v.mu.Unlock()

	if v.store != nil {
		if serr := v.store.Append(ctx, item); serr != nil && err == nil {
			return roll, fmt.Errorf("recording roll: %w", serr)
		}
	}
	return roll, err
}

// History returns a copy of the recorded attempts, oldest first.
func (v *DiceView) History() []HistoryItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]HistoryItem(nil), v.history...)
}

// ClearHistory forgets every recorded attempt.
func (v *DiceView) ClearHistory(ctx context.Context) error {
	v.mu.Lock()
	v.history = nil
	v.mu.Unlock()
	if v.store != nil {
		return v.store.Clear(ctx)
	}
	return nil
}
