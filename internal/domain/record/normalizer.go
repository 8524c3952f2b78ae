package record

import (
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/domain/bookmaker"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
)

// BookmakerResolver maps a bookmaker name to its stable identifier.
type BookmakerResolver interface {
	Resolve(name string) string
}

// Normalizer turns a game and its odds rows into a CanonicalRecord.
// It holds no mutable state; the same input always yields the same record.
type Normalizer struct {
	SourceID string
	Resolver BookmakerResolver
}

// NewNormalizer falls back to the built-in bookmaker table when resolver is nil.
func NewNormalizer(sourceID string, resolver BookmakerResolver) *Normalizer {
	if resolver == nil {
		resolver = bookmaker.NewDefaultResolver()
	}
	return &Normalizer{SourceID: sourceID, Resolver: resolver}
}

type groupKey struct {
	bookmaker string
	betType   string
}

func (n *Normalizer) Normalize(game odds.Game, rows []odds.RawOddsRow) CanonicalRecord {
	groups := make([]MarketGroup, 0)
	groupIndex := make(map[groupKey]int)
	bookmakers := make([]string, 0)
	seenBookmakers := make(map[string]struct{})
	isLive := game.IsLive()

	for _, row := range rows {
		key := groupKey{bookmaker: row.Bookmaker, betType: game.BetType}
		pos, ok := groupIndex[key]
		if !ok {
			pos = len(groups)
			groupIndex[key] = pos
			groups = append(groups, MarketGroup{
				Bookmaker:   row.Bookmaker,
				MarketType:  game.BetType,
				IsLive:      isLive,
				LastUpdated: formatTimestamp(row.Timestamp),
				Odds:        make([]Outcome, 0, 3),
			})
		}
		groups[pos].Odds = append(groups[pos].Odds, outcomesForRow(game, row)...)

		if _, ok := seenBookmakers[row.Bookmaker]; !ok {
			seenBookmakers[row.Bookmaker] = struct{}{}
			bookmakers = append(bookmakers, row.Bookmaker)
		}
	}

	firstBookmaker := ""
	if len(rows) > 0 {
		firstBookmaker = rows[0].Bookmaker
	}

	return CanonicalRecord{
		SourceID:      n.SourceID,
		EventSource:   n.resolve(firstBookmaker),
		Name:          game.EventName(),
		HomeTeam:      game.HomeTeam,
		AwayTeam:      game.AwayTeam,
		EventDatetime: game.EventDatetime(),
		League:        game.League,
		Sport:         game.Sport,
		Status:        game.Status,
		Markets: &MarketsSummary{
			Markets:        groups,
			Bookmakers:     bookmakers,
			MarketTypes:    []string{game.BetType},
			TotalMarkets:   len(groups),
			BookmakerCount: len(bookmakers),
		},
	}
}

func (n *Normalizer) resolve(name string) string {
	if n.Resolver == nil {
		return bookmaker.UnknownID
	}
	return n.Resolver.Resolve(name)
}

func outcomesForRow(game odds.Game, row odds.RawOddsRow) []Outcome {
	out := make([]Outcome, 0, 3)
	if o, ok := buildOutcome(OutcomeHome, game.HomeTeam, row.HomeOdds, row.HomePercent, row.Bookmaker); ok {
		out = append(out, o)
	}
	if o, ok := buildOutcome(OutcomeAway, game.AwayTeam, row.AwayOdds, row.AwayPercent, row.Bookmaker); ok {
		out = append(out, o)
	}
	if o, ok := buildOutcome(OutcomeDraw, OutcomeDraw, row.DrawOdds, row.DrawPercent, row.Bookmaker); ok {
		out = append(out, o)
	}
	return out
}

func buildOutcome(side, team string, american *int, percent *float64, bookmaker string) (Outcome, bool) {
	price, ok := odds.ToDecimalPtr(american)
	if !ok {
		return Outcome{}, false
	}

	var probability *float64
	if percent != nil {
		p := *percent / 100
		probability = &p
	}

	return Outcome{
		Outcome:       side,
		OutcomeTeam:   team,
		AmericanPrice: *american,
		Price:         price,
		Format:        PriceFormatDecimal,
		Bookmaker:     bookmaker,
		Probability:   probability,
	}, true
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}

// ConnectionTestRecord is the payload used to probe the ingestion API.
func ConnectionTestRecord(sourceID string, now time.Time) CanonicalRecord {
	return CanonicalRecord{
		SourceID:      sourceID,
		EventSource:   sourceID,
		Name:          "Test Game vs Test Opponent",
		HomeTeam:      "Test Home",
		AwayTeam:      "Test Away",
		EventDatetime: now.UTC().Format(time.RFC3339),
		League:        "Test League",
		Sport:         "Test Sport",
		Status:        "test",
		Markets:       nil,
	}
}
