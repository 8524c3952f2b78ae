package record

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/domain/bookmaker"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
)

const testSourceID = "17a7de9a-c23b-49eb-9816-93ebc3bba1c5"

func intPtr(v int) *int { return &v }

func sampleGame() odds.Game {
	return odds.Game{
		ID:        "g1",
		HomeTeam:  "Cubs",
		AwayTeam:  "Angels",
		League:    "MLB",
		Sport:     "baseball",
		Status:    "live",
		BetType:   "moneyline",
		StartTime: "Today 7:05 PM",
	}
}

func sampleRows() []odds.RawOddsRow {
	ts := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)
	return []odds.RawOddsRow{
		{GameID: "g1", Bookmaker: "DraftKings", HomeOdds: intPtr(-150), AwayOdds: intPtr(130), Timestamp: ts},
		{GameID: "g1", Bookmaker: "FanDuel", HomeOdds: intPtr(-140), AwayOdds: intPtr(120), Timestamp: ts.Add(time.Minute)},
	}
}

func TestNormalize_EndToEndExample(t *testing.T) {
	n := NewNormalizer(testSourceID, bookmaker.NewDefaultResolver())

	rec := n.Normalize(sampleGame(), sampleRows())

	if rec.Markets == nil {
		t.Fatalf("expected markets summary")
	}
	if rec.Markets.TotalMarkets != 2 {
		t.Fatalf("expected total_markets=2, got %d", rec.Markets.TotalMarkets)
	}
	if rec.Markets.BookmakerCount != 2 {
		t.Fatalf("expected bookmaker_count=2, got %d", rec.Markets.BookmakerCount)
	}
	if got := rec.OutcomeCount(); got != 4 {
		t.Fatalf("expected 4 outcomes, got %d", got)
	}
	if rec.EventSource != "fe6bc0f8-e8a9-4083-9401-766d30817009" {
		t.Fatalf("expected DraftKings event source, got %s", rec.EventSource)
	}
	if rec.Name != "Cubs vs Angels" {
		t.Fatalf("unexpected name: %s", rec.Name)
	}
	if rec.SourceID != testSourceID {
		t.Fatalf("unexpected source id: %s", rec.SourceID)
	}
	if !reflect.DeepEqual(rec.Markets.MarketTypes, []string{"moneyline"}) {
		t.Fatalf("unexpected market types: %v", rec.Markets.MarketTypes)
	}

	first := rec.Markets.Markets[0]
	if first.Bookmaker != "DraftKings" || !first.IsLive || first.MarketType != "moneyline" {
		t.Fatalf("unexpected first group: %+v", first)
	}
	if first.LastUpdated != "2026-05-02T18:30:00Z" {
		t.Fatalf("unexpected last_updated: %s", first.LastUpdated)
	}
	home := first.Odds[0]
	if home.Outcome != OutcomeHome || home.OutcomeTeam != "Cubs" || home.AmericanPrice != -150 {
		t.Fatalf("unexpected home outcome: %+v", home)
	}
	if math.Abs(home.Price-1.666667) > 1e-6 || home.Format != PriceFormatDecimal {
		t.Fatalf("unexpected home price: %+v", home)
	}
	away := first.Odds[1]
	if away.Outcome != OutcomeAway || away.OutcomeTeam != "Angels" || math.Abs(away.Price-2.3) > 1e-9 {
		t.Fatalf("unexpected away outcome: %+v", away)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(testSourceID, bookmaker.NewDefaultResolver())

	a := n.Normalize(sampleGame(), sampleRows())
	b := n.Normalize(sampleGame(), sampleRows())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical records:\n%+v\n%+v", a, b)
	}
}

func TestNormalize_EmptyRows(t *testing.T) {
	n := NewNormalizer(testSourceID, bookmaker.NewDefaultResolver())

	rec := n.Normalize(sampleGame(), nil)
	if rec.Markets == nil {
		t.Fatalf("expected markets summary")
	}
	if rec.Markets.TotalMarkets != 0 || rec.Markets.BookmakerCount != 0 || len(rec.Markets.Markets) != 0 {
		t.Fatalf("expected empty summary, got %+v", rec.Markets)
	}
	if rec.EventSource != bookmaker.UnknownID {
		t.Fatalf("expected unknown event source, got %s", rec.EventSource)
	}
}

func TestNormalize_WithoutResolverStaysInIdentifierSet(t *testing.T) {
	rec := NewNormalizer(testSourceID, nil).Normalize(sampleGame(), sampleRows())
	if rec.EventSource != bookmaker.NewDefaultResolver().Resolve("DraftKings") {
		t.Fatalf("expected the default table to resolve DraftKings, got %q", rec.EventSource)
	}

	bare := &Normalizer{SourceID: testSourceID}
	if got := bare.Normalize(sampleGame(), sampleRows()).EventSource; got != bookmaker.UnknownID {
		t.Fatalf("expected unknown identifier without a resolver, got %q", got)
	}
	if got := bare.Normalize(sampleGame(), nil).EventSource; got != bookmaker.UnknownID {
		t.Fatalf("expected unknown identifier for empty rows, got %q", got)
	}
}

func TestNormalize_DrawAndMissingPrices(t *testing.T) {
	n := NewNormalizer(testSourceID, bookmaker.NewDefaultResolver())
	game := sampleGame()
	game.Status = "scheduled"
	pct := 48.5

	rows := []odds.RawOddsRow{
		{GameID: "g1", Bookmaker: "bet365", HomeOdds: intPtr(110), AwayOdds: nil, DrawOdds: intPtr(240), HomePercent: &pct},
		{GameID: "g1", Bookmaker: "bwin", HomeOdds: intPtr(0)},
	}

	rec := n.Normalize(game, rows)
	if rec.Markets.TotalMarkets != 2 {
		t.Fatalf("expected 2 groups, got %d", rec.Markets.TotalMarkets)
	}

	group := rec.Markets.Markets[0]
	if group.IsLive {
		t.Fatalf("expected is_live=false for scheduled game")
	}
	if len(group.Odds) != 2 {
		t.Fatalf("expected home and draw outcomes, got %+v", group.Odds)
	}
	if group.Odds[1].Outcome != OutcomeDraw || group.Odds[1].OutcomeTeam != "Draw" {
		t.Fatalf("unexpected draw outcome: %+v", group.Odds[1])
	}
	if group.Odds[0].Probability == nil || math.Abs(*group.Odds[0].Probability-0.485) > 1e-9 {
		t.Fatalf("unexpected probability: %v", group.Odds[0].Probability)
	}
	if len(rec.Markets.Markets[1].Odds) != 0 {
		t.Fatalf("expected zero-price row to produce no outcomes")
	}
}

func TestNormalize_TotalMarketsMatchesDistinctPairs(t *testing.T) {
	n := NewNormalizer(testSourceID, bookmaker.NewDefaultResolver())
	rows := []odds.RawOddsRow{
		{GameID: "g1", Bookmaker: "A", HomeOdds: intPtr(100)},
		{GameID: "g1", Bookmaker: "B", HomeOdds: intPtr(100)},
		{GameID: "g1", Bookmaker: "A", AwayOdds: intPtr(-120)},
		{GameID: "g1", Bookmaker: "C"},
	}

	rec := n.Normalize(sampleGame(), rows)
	if rec.Markets.TotalMarkets != 3 || len(rec.Markets.Markets) != 3 {
		t.Fatalf("expected 3 groups, got %d", rec.Markets.TotalMarkets)
	}
	if rec.Markets.BookmakerCount != 3 {
		t.Fatalf("expected 3 bookmakers, got %d", rec.Markets.BookmakerCount)
	}
	if len(rec.Markets.Markets[0].Odds) != 2 {
		t.Fatalf("expected both rows of bookmaker A in one group")
	}
}

func TestNormalize_EventDatetimePrefersParsed(t *testing.T) {
	n := NewNormalizer(testSourceID, bookmaker.NewDefaultResolver())
	game := sampleGame()
	parsed := time.Date(2026, 5, 2, 23, 5, 0, 0, time.UTC)
	game.StartTimeParsed = &parsed

	rec := n.Normalize(game, sampleRows())
	if rec.EventDatetime != "2026-05-02T23:05:00Z" {
		t.Fatalf("unexpected event_datetime: %s", rec.EventDatetime)
	}

	game.StartTimeParsed = nil
	rec = n.Normalize(game, sampleRows())
	if rec.EventDatetime != "Today 7:05 PM" {
		t.Fatalf("expected raw start time fallback, got %s", rec.EventDatetime)
	}
}

func TestConnectionTestRecord(t *testing.T) {
	rec := ConnectionTestRecord(testSourceID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if rec.Markets != nil {
		t.Fatalf("expected nil markets")
	}
	if rec.Status != "test" || rec.EventSource != testSourceID {
		t.Fatalf("unexpected test record: %+v", rec)
	}
}
