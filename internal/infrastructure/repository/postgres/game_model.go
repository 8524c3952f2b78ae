package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	GameID          string       `db:"game_id"`
	HomeTeam        string       `db:"home_team"`
	AwayTeam        string       `db:"away_team"`
	League          string       `db:"league"`
	Sport           string       `db:"sport"`
	GameStatus      string       `db:"game_status"`
	BetType         string       `db:"bet_type"`
	StartTime       string       `db:"start_time"`
	StartTimeParsed sql.NullTime `db:"start_time_parsed"`
	CreatedAt       time.Time    `db:"created_at"`
}

type oddsTableModel struct {
	ID              int64           `db:"id"`
	GameID          string          `db:"game_id"`
	Sportsbook      string          `db:"sportsbook"`
	MarketType      string          `db:"market_type"`
	HomeOdds        sql.NullInt64   `db:"home_odds"`
	AwayOdds        sql.NullInt64   `db:"away_odds"`
	DrawOdds        sql.NullInt64   `db:"draw_odds"`
	HomeOddsPercent sql.NullFloat64 `db:"home_odds_percent"`
	AwayOddsPercent sql.NullFloat64 `db:"away_odds_percent"`
	DrawOddsPercent sql.NullFloat64 `db:"draw_odds_percent"`
	OddsFormat      string          `db:"odds_format"`
	IsLive          bool            `db:"is_live"`
	Timestamp       time.Time       `db:"timestamp"`
	CreatedAt       time.Time       `db:"created_at"`
}
