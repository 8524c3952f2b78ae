package odds

import (
	"reflect"
	"testing"
	"time"
)

func TestDedupeGames_LatestCreatedAtWins(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	games := []Game{
		{ID: "g1", HomeTeam: "old", CreatedAt: base},
		{ID: "g2", HomeTeam: "only", CreatedAt: base},
		{ID: "g1", HomeTeam: "new", CreatedAt: base.Add(time.Minute)},
		{ID: "g1", HomeTeam: "same-time", CreatedAt: base.Add(time.Minute)},
	}

	got := DedupeGames(games)
	if len(got) != 2 {
		t.Fatalf("expected 2 games, got %d", len(got))
	}
	if got[0].ID != "g1" || got[0].HomeTeam != "new" {
		t.Fatalf("unexpected winner for g1: %+v", got[0])
	}
	if got[1].ID != "g2" {
		t.Fatalf("expected g2 second, got %s", got[1].ID)
	}
}

func TestDedupeGames_Idempotent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	games := []Game{
		{ID: "a", CreatedAt: base},
		{ID: "b", CreatedAt: base},
		{ID: "a", CreatedAt: base.Add(time.Second)},
		{ID: "c", CreatedAt: base},
		{ID: "b", CreatedAt: base.Add(-time.Second)},
	}

	once := DedupeGames(games)
	twice := DedupeGames(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent dedupe:\nonce=%+v\ntwice=%+v", once, twice)
	}
	if len(once) > len(games) {
		t.Fatalf("result larger than input")
	}

	seen := make(map[string]struct{}, len(once))
	for _, g := range once {
		if _, ok := seen[g.ID]; ok {
			t.Fatalf("duplicate id %s in output", g.ID)
		}
		seen[g.ID] = struct{}{}
	}
}

func TestDedupeGames_Empty(t *testing.T) {
	if got := DedupeGames(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %d", len(got))
	}
}

func TestDedupeOdds_TimestampOrdering(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	home := func(v int) *int { return &v }

	rows := []RawOddsRow{
		{GameID: "g1", Bookmaker: "DraftKings", HomeOdds: home(-110), Timestamp: base.Add(time.Minute)},
		{GameID: "g1", Bookmaker: "FanDuel", HomeOdds: home(-105), Timestamp: base},
		{GameID: "g1", Bookmaker: "DraftKings", HomeOdds: home(-120), Timestamp: base},
		{GameID: "g1", Bookmaker: "DraftKings ", HomeOdds: home(-130), Timestamp: base.Add(2 * time.Minute)},
		{GameID: "g2", Bookmaker: "DraftKings", HomeOdds: home(100), Timestamp: base},
	}

	got := DedupeOdds(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if *got[0].HomeOdds != -130 {
		t.Fatalf("expected latest DraftKings row to win, got %d", *got[0].HomeOdds)
	}
	if got[1].Bookmaker != "FanDuel" || got[2].GameID != "g2" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestDedupeOdds_TieKeepsFirst(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, second := -110, -115
	rows := []RawOddsRow{
		{GameID: "g1", Bookmaker: "BetMGM", HomeOdds: &first, Timestamp: ts, CreatedAt: ts},
		{GameID: "g1", Bookmaker: "BetMGM", HomeOdds: &second, Timestamp: ts, CreatedAt: ts},
	}

	got := DedupeOdds(rows)
	if len(got) != 1 || *got[0].HomeOdds != first {
		t.Fatalf("expected first row kept on tie, got %+v", got)
	}
}
