package odds

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinal     = "final"
)

// Game represents one captured sporting event.
type Game struct {
	ID              string
	HomeTeam        string
	AwayTeam        string
	League          string
	Sport           string
	Status          string
	BetType         string
	StartTime       string
	StartTimeParsed *time.Time
	CreatedAt       time.Time
}

// RawOddsRow is one bookmaker quote for one game at one point in time.
// Prices are American odds; nil means the side was not quoted.
type RawOddsRow struct {
	GameID      string
	Bookmaker   string
	MarketType  string
	HomeOdds    *int
	AwayOdds    *int
	DrawOdds    *int
	HomePercent *float64
	AwayPercent *float64
	DrawPercent *float64
	Format      string
	Timestamp   time.Time
	CreatedAt   time.Time
	IsLive      bool
}

func (g Game) IsLive() bool {
	return strings.EqualFold(strings.TrimSpace(g.Status), StatusLive)
}

func (g Game) EventName() string {
	return g.HomeTeam + " vs " + g.AwayTeam
}

// EventDatetime prefers the parsed start time and falls back to the raw text.
func (g Game) EventDatetime() string {
	if g.StartTimeParsed != nil && !g.StartTimeParsed.IsZero() {
		return g.StartTimeParsed.UTC().Format(time.RFC3339)
	}
	return g.StartTime
}

// GroupByGame indexes rows by game id keeping the supplied order inside each game.
func GroupByGame(rows []RawOddsRow) map[string][]RawOddsRow {
	out := make(map[string][]RawOddsRow)
	for _, row := range rows {
		out[row.GameID] = append(out[row.GameID], row)
	}
	return out
}
