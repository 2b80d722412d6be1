package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// ContentSlot persists one DailyContent as JSON under a fixed key.
type ContentSlot struct {
	kv  KV
	key string
}

// NewContentSlot returns a slot under model.CacheKey.
func NewContentSlot(kv KV) *ContentSlot {
	return &ContentSlot{kv: kv, key: model.CacheKey}
}

// Load returns the stored card, or nil when the slot is empty. A value that
// no longer decodes is treated as empty.
func (s *ContentSlot) Load(ctx context.Context) (*model.DailyContent, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load content slot: %w", err)
	}

	var c model.DailyContent
	if err := json.Unmarshal([]byte(raw), &c); err != nil || c.Date == "" {
		slog.Warn("discarding unreadable content slot", "key", s.key, "error", err)
		return nil, nil
	}
	return &c, nil
}

// Save replaces the stored card.
func (s *ContentSlot) Save(ctx context.Context, c model.DailyContent) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save content slot: %w", err)
	}
	return nil
}
