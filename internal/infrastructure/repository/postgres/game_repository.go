package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
	qb "github.com/riskibarqy/odds-pipeline/internal/platform/querybuilder"
)

var gameColumns = []string{
	"game_id",
	"home_team",
	"away_team",
	"league",
	"sport",
	"game_status",
	"bet_type",
	"start_time",
	"start_time_parsed",
	"created_at",
}

var oddsColumns = []string{
	"id",
	"game_id",
	"sportsbook",
	"market_type",
	"home_odds",
	"away_odds",
	"draw_odds",
	"home_odds_percent",
	"away_odds_percent",
	"draw_odds_percent",
	"odds_format",
	"is_live",
	`"timestamp"`,
	"created_at",
}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListGames(ctx context.Context, filter odds.GameFilter) ([]odds.Game, error) {
	conditions := make([]qb.Condition, 0, 2)
	if len(filter.IDs) > 0 {
		conditions = append(conditions, qb.AnyOf("game_id", pq.Array(filter.IDs)))
	}
	if filter.OnlyWithOdds {
		conditions = append(conditions, qb.Expr("EXISTS (SELECT 1 FROM odds o WHERE o.game_id = games.game_id)"))
	}

	builder := qb.Select(gameColumns...).From("games").
		Where(conditions...).
		OrderBy("created_at DESC", "game_id")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]odds.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) ListOddsByGameIDs(ctx context.Context, gameIDs []string) ([]odds.RawOddsRow, error) {
	if len(gameIDs) == 0 {
		return []odds.RawOddsRow{}, nil
	}

	query, args, err := qb.Select(oddsColumns...).From("odds").
		Where(qb.AnyOf("game_id", pq.Array(gameIDs))).
		OrderBy("game_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select odds by games query: %w", err)
	}

	var rows []oddsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select odds by games: %w", err)
	}

	out := make([]odds.RawOddsRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, oddsFromRow(row))
	}
	return out, nil
}

func gameFromRow(row gameTableModel) odds.Game {
	game := odds.Game{
		ID:        row.GameID,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		League:    row.League,
		Sport:     row.Sport,
		Status:    row.GameStatus,
		BetType:   row.BetType,
		StartTime: row.StartTime,
		CreatedAt: row.CreatedAt,
	}
	if row.StartTimeParsed.Valid {
		parsed := row.StartTimeParsed.Time
		game.StartTimeParsed = &parsed
	}
	return game
}

func oddsFromRow(row oddsTableModel) odds.RawOddsRow {
	return odds.RawOddsRow{
		GameID:      row.GameID,
		Bookmaker:   row.Sportsbook,
		MarketType:  row.MarketType,
		HomeOdds:    nullInt64ToIntPtr(row.HomeOdds),
		AwayOdds:    nullInt64ToIntPtr(row.AwayOdds),
		DrawOdds:    nullInt64ToIntPtr(row.DrawOdds),
		HomePercent: nullFloat64ToPtr(row.HomeOddsPercent),
		AwayPercent: nullFloat64ToPtr(row.AwayOddsPercent),
		DrawPercent: nullFloat64ToPtr(row.DrawOddsPercent),
		Format:      row.OddsFormat,
		Timestamp:   row.Timestamp,
		CreatedAt:   row.CreatedAt,
		IsLive:      row.IsLive,
	}
}
