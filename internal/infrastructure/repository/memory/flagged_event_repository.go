package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
)

// FlaggedEventRepository is the in-process flagged event index.
type FlaggedEventRepository struct {
	mu     sync.RWMutex
	items  map[string]matching.FlaggedEvent
	nextID int64
	now    func() time.Time
}

func NewFlaggedEventRepository(events []matching.FlaggedEvent) *FlaggedEventRepository {
	items := make(map[string]matching.FlaggedEvent, len(events))
	var maxID int64
	for _, ev := range events {
		items[ev.GameID] = ev
		if ev.ID > maxID {
			maxID = ev.ID
		}
	}

	return &FlaggedEventRepository{
		items:  items,
		nextID: maxID + 1,
		now:    time.Now,
	}
}

func (r *FlaggedEventRepository) Lookup(_ context.Context, gameID string) (matching.Status, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.items[gameID]
	if !ok || ev.ResolutionStatus == matching.ResolutionResolved {
		return matching.Status{}, false, nil
	}
	return matching.StatusFromFlagged(ev), true, nil
}

func (r *FlaggedEventRepository) List(_ context.Context, filter matching.FlaggedEventFilter) ([]matching.FlaggedEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matching.FlaggedEvent, 0, len(r.items))
	for _, ev := range r.items {
		if filter.ResolutionStatus != "" && ev.ResolutionStatus != filter.ResolutionStatus {
			continue
		}
		out = append(out, ev)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].GameID < out[j].GameID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *FlaggedEventRepository) CountByResolution(_ context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for _, ev := range r.items {
		out[ev.ResolutionStatus]++
	}
	return out, nil
}

func (r *FlaggedEventRepository) MarkResolved(_ context.Context, gameID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.items[gameID]
	if !ok {
		return false, nil
	}
	ev.ResolutionStatus = matching.ResolutionResolved
	ev.UpdatedAt = r.now().UTC()
	r.items[gameID] = ev
	return true, nil
}

func (r *FlaggedEventRepository) Upsert(_ context.Context, ev matching.FlaggedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if existing, ok := r.items[ev.GameID]; ok {
		ev.ID = existing.ID
		ev.CreatedAt = existing.CreatedAt
	} else {
		ev.ID = r.nextID
		r.nextID++
		ev.CreatedAt = now
	}
	if ev.MissingElements == nil {
		ev.MissingElements = []string{}
	}
	ev.UpdatedAt = now
	r.items[ev.GameID] = ev
	return nil
}
