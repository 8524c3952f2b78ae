package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type flaggedEventTableModel struct {
	ID                 int64          `db:"id"`
	GameID             string         `db:"game_id"`
	HomeTeam           string         `db:"home_team"`
	AwayTeam           string         `db:"away_team"`
	Sport              string         `db:"sport"`
	League             string         `db:"league"`
	EventDatetime      sql.NullTime   `db:"event_datetime"`
	FlagReason         string         `db:"flag_reason"`
	ResolutionStatus   string         `db:"resolution_status"`
	TranslatedSport    string         `db:"translated_sport"`
	TranslatedLeague   string         `db:"translated_league"`
	TranslatedHomeTeam string         `db:"translated_home_team"`
	TranslatedAwayTeam string         `db:"translated_away_team"`
	MissingElements    pq.StringArray `db:"missing_elements"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

type flaggedEventInsertModel struct {
	GameID             string         `db:"game_id"`
	HomeTeam           string         `db:"home_team"`
	AwayTeam           string         `db:"away_team"`
	Sport              string         `db:"sport"`
	League             string         `db:"league"`
	EventDatetime      *time.Time     `db:"event_datetime"`
	FlagReason         string         `db:"flag_reason"`
	ResolutionStatus   string         `db:"resolution_status"`
	TranslatedSport    string         `db:"translated_sport"`
	TranslatedLeague   string         `db:"translated_league"`
	TranslatedHomeTeam string         `db:"translated_home_team"`
	TranslatedAwayTeam string         `db:"translated_away_team"`
	MissingElements    pq.StringArray `db:"missing_elements"`
}

type resolutionCountRow struct {
	ResolutionStatus string `db:"resolution_status"`
	Total            int    `db:"total"`
}
