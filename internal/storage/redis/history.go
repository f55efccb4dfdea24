// Package redis persists dice roll history in a capped Redis list.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/initiative/internal/view"
)

// RollHistory stores view.HistoryItem values oldest first under one key,
// keeping only the newest limit entries.
type RollHistory struct {
	client redis.Cmdable
	key    string
	limit  int64
}

// NewRollHistory creates a RollHistory.
//
// Precondition: client must be non-nil; key must be non-empty; limit >= 1.
func NewRollHistory(client redis.Cmdable, key string, limit int) *RollHistory {
	return &RollHistory{client: client, key: key, limit: int64(limit)}
}

// Append adds item and trims the list to the newest limit entries.
func (h *RollHistory) Append(ctx context.Context, item view.HistoryItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal roll: %w", err)
	}

	pipe := h.client.Pipeline()
	pipe.RPush(ctx, h.key, string(data))
	pipe.LTrim(ctx, h.key, -h.limit, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append roll in Redis: %w", err)
	}
	return nil
}

// List returns the stored rolls oldest first. A missing key is an empty history.
func (h *RollHistory) List(ctx context.Context) ([]view.HistoryItem, error) {
	raw, err := h.client.LRange(ctx, h.key, 0, -1).Result()
	if errors.Is(err, redis.Nil) {
		return []view.HistoryItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rolls from Redis: %w", err)
	}

	items := make([]view.HistoryItem, 0, len(raw))
	for i, r := range raw {
		var item view.HistoryItem
		if err := json.Unmarshal([]byte(r), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal roll %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Clear deletes the stored history.
func (h *RollHistory) Clear(ctx context.Context) error {
	if err := h.client.Del(ctx, h.key).Err(); err != nil {
		return fmt.Errorf("failed to clear rolls in Redis: %w", err)
	}
	return nil
}
