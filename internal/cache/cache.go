package cache

//go:generate mockgen -destination=mock/mock_cache.go -package=mockcache -source=cache.go

import (
	"context"

	"github.com/KirkDiggler/dnd-dpr-engine/internal/domain/combat"
)

// Cache memoizes computed DPR results keyed by a stable hash of their
// inputs. It is purely an optimization: running without one changes
// latency, never values. Implementations own copies of the results they
// store, so callers may mutate what they pass in or get back.
type Cache interface {
	// Get returns the cached result for key. A miss is a NotFound error.
	Get(ctx context.Context, key string) (*combat.DPRResult, error)

	// Set stores result under key, replacing any existing entry.
	Set(ctx context.Context, key string, result *combat.DPRResult) error

	// Clear removes every cached result.
	Clear(ctx context.Context) error
}
