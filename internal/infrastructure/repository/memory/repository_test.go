package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
)

func TestGameRepository_ListGames(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(SeedGames(), SeedOdds())
	ctx := context.Background()

	all, err := repo.ListGames(ctx, odds.GameFilter{})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(all) != 3 || all[0].ID != GameIDArsenalChelsea {
		t.Fatalf("expected newest first, got %+v", all)
	}

	withOdds, err := repo.ListGames(ctx, odds.GameFilter{OnlyWithOdds: true, Limit: 1})
	if err != nil {
		t.Fatalf("list games with odds: %v", err)
	}
	if len(withOdds) != 1 || withOdds[0].ID != GameIDYankeesRedSox {
		t.Fatalf("unexpected games with odds: %+v", withOdds)
	}

	byID, err := repo.ListGames(ctx, odds.GameFilter{IDs: []string{GameIDCubsAngels, "missing"}})
	if err != nil {
		t.Fatalf("list games by id: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != GameIDCubsAngels {
		t.Fatalf("unexpected games by id: %+v", byID)
	}
}

func TestGameRepository_ListOddsByGameIDs_DedupesIDs(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(SeedGames(), SeedOdds())
	rows, err := repo.ListOddsByGameIDs(context.Background(), []string{GameIDCubsAngels, GameIDCubsAngels, GameIDArsenalChelsea})
	if err != nil {
		t.Fatalf("list odds: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two cubs rows, got %d", len(rows))
	}
}

func TestFlaggedEventRepository_LookupAndResolve(t *testing.T) {
	t.Parallel()

	repo := NewFlaggedEventRepository(SeedFlaggedEvents())
	ctx := context.Background()

	status, found, err := repo.Lookup(ctx, GameIDArsenalChelsea)
	if err != nil || !found {
		t.Fatalf("expected flag, found=%v err=%v", found, err)
	}
	if status.Status != matching.StatusPending || status.Source != matching.SourceFlaggedEvents {
		t.Fatalf("unexpected status: %+v", status)
	}

	updated, err := repo.MarkResolved(ctx, GameIDArsenalChelsea)
	if err != nil || !updated {
		t.Fatalf("mark resolved: updated=%v err=%v", updated, err)
	}
	if _, found, _ := repo.Lookup(ctx, GameIDArsenalChelsea); found {
		t.Fatalf("resolved flag must not be reported")
	}

	updated, err = repo.MarkResolved(ctx, "missing")
	if err != nil || updated {
		t.Fatalf("expected no update for unknown game, updated=%v err=%v", updated, err)
	}

	counts, err := repo.CountByResolution(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[matching.ResolutionResolved] != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestFlaggedEventRepository_UpsertKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	repo := NewFlaggedEventRepository(SeedFlaggedEvents())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	if err := repo.Upsert(ctx, matching.FlaggedEvent{
		GameID:           GameIDArsenalChelsea,
		HomeTeam:         "Arsenal",
		AwayTeam:         "Chelsea",
		Sport:            "Soccer",
		ResolutionStatus: matching.StatusReadyForCreation,
	}); err != nil {
		t.Fatalf("upsert existing: %v", err)
	}
	if err := repo.Upsert(ctx, matching.FlaggedEvent{
		GameID:   GameIDCubsAngels,
		HomeTeam: "Chicago Cubs",
		AwayTeam: "Los Angeles Angels",
		Sport:    "Baseball",
	}); err != nil {
		t.Fatalf("upsert new: %v", err)
	}

	events, err := repo.List(ctx, matching.FlaggedEventFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected two flags, got %d", len(events))
	}

	byGame := make(map[string]matching.FlaggedEvent, len(events))
	for _, ev := range events {
		byGame[ev.GameID] = ev
	}
	arsenal := byGame[GameIDArsenalChelsea]
	if arsenal.ID != 1 || arsenal.CreatedAt.Equal(fixed) || !arsenal.UpdatedAt.Equal(fixed) {
		t.Fatalf("existing flag lost its identity: %+v", arsenal)
	}
	cubs := byGame[GameIDCubsAngels]
	if cubs.ID != 2 || !cubs.CreatedAt.Equal(fixed) || cubs.MissingElements == nil {
		t.Fatalf("unexpected new flag: %+v", cubs)
	}

	limited, err := repo.List(ctx, matching.FlaggedEventFilter{ResolutionStatus: matching.StatusReadyForCreation, Limit: 5})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(limited) != 1 || limited[0].GameID != GameIDArsenalChelsea {
		t.Fatalf("unexpected filtered flags: %+v", limited)
	}
}
