package ledger

import (
	"context"
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/platform/cache"
)

// MemoryLedger keeps fingerprints in process. Entries vanish on restart.
type MemoryLedger struct {
	store *cache.Store[string]
}

func NewMemoryLedger(ttl time.Duration) *MemoryLedger {
	return &MemoryLedger{store: cache.NewStore[string](ttl)}
}

func (l *MemoryLedger) Seen(ctx context.Context, key, fingerprint string) (bool, error) {
	stored, ok := l.store.Get(ctx, defaultKeyPrefix+key)
	return ok && stored == fingerprint, nil
}

func (l *MemoryLedger) Remember(ctx context.Context, key, fingerprint string) error {
	l.store.Set(ctx, defaultKeyPrefix+key, fingerprint)
	return nil
}

func (l *MemoryLedger) Forget(ctx context.Context, key string) error {
	l.store.Delete(ctx, defaultKeyPrefix+key)
	return nil
}
