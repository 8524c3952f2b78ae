package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
)

type GameRepository struct {
	mu    sync.RWMutex
	games []odds.Game
	odds  map[string][]odds.RawOddsRow
}

func NewGameRepository(games []odds.Game, rows []odds.RawOddsRow) *GameRepository {
	return &GameRepository{
		games: append([]odds.Game(nil), games...),
		odds:  odds.GroupByGame(rows),
	}
}

// ListGames returns games newest first, matching the postgres ordering.
func (r *GameRepository) ListGames(_ context.Context, filter odds.GameFilter) ([]odds.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[string]struct{}
	if len(filter.IDs) > 0 {
		wanted = make(map[string]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			wanted[id] = struct{}{}
		}
	}

	out := make([]odds.Game, 0, len(r.games))
	for _, g := range r.games {
		if wanted != nil {
			if _, ok := wanted[g.ID]; !ok {
				continue
			}
		}
		if filter.OnlyWithOdds && len(r.odds[g.ID]) == 0 {
			continue
		}
		out = append(out, g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *GameRepository) ListOddsByGameIDs(_ context.Context, gameIDs []string) ([]odds.RawOddsRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]odds.RawOddsRow, 0)
	seen := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, r.odds[id]...)
	}
	return out, nil
}
