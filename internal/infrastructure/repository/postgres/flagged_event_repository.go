package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	qb "github.com/riskibarqy/odds-pipeline/internal/platform/querybuilder"
)

var flaggedEventColumns = []string{
	"id",
	"game_id",
	"home_team",
	"away_team",
	"sport",
	"league",
	"event_datetime",
	"flag_reason",
	"resolution_status",
	"translated_sport",
	"translated_league",
	"translated_home_team",
	"translated_away_team",
	"missing_elements",
	"created_at",
	"updated_at",
}

type FlaggedEventRepository struct {
	db *sqlx.DB
}

func NewFlaggedEventRepository(db *sqlx.DB) *FlaggedEventRepository {
	return &FlaggedEventRepository{db: db}
}

// Lookup reports the status of an unresolved flag for gameID.
func (r *FlaggedEventRepository) Lookup(ctx context.Context, gameID string) (matching.Status, bool, error) {
	query, args, err := qb.Select(flaggedEventColumns...).From("flagged_events").
		Where(
			qb.Eq("game_id", gameID),
			qb.Expr("resolution_status <> ?", matching.ResolutionResolved),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return matching.Status{}, false, fmt.Errorf("build select flagged event query: %w", err)
	}

	var row flaggedEventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matching.Status{}, false, nil
		}
		return matching.Status{}, false, fmt.Errorf("select flagged event: %w", err)
	}

	return matching.StatusFromFlagged(flaggedEventFromRow(row)), true, nil
}

func (r *FlaggedEventRepository) List(ctx context.Context, filter matching.FlaggedEventFilter) ([]matching.FlaggedEvent, error) {
	conditions := make([]qb.Condition, 0, 1)
	if filter.ResolutionStatus != "" {
		conditions = append(conditions, qb.Eq("resolution_status", filter.ResolutionStatus))
	}

	query, args, err := qb.Select(flaggedEventColumns...).From("flagged_events").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		Limit(filter.Limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select flagged events query: %w", err)
	}

	var rows []flaggedEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select flagged events: %w", err)
	}

	out := make([]matching.FlaggedEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, flaggedEventFromRow(row))
	}
	return out, nil
}

func (r *FlaggedEventRepository) CountByResolution(ctx context.Context) (map[string]int, error) {
	query, args, err := qb.Select("resolution_status", "COUNT(*) AS total").From("flagged_events").
		GroupBy("resolution_status").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count flagged events query: %w", err)
	}

	var rows []resolutionCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count flagged events: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.ResolutionStatus] = row.Total
	}
	return out, nil
}

func (r *FlaggedEventRepository) MarkResolved(ctx context.Context, gameID string) (bool, error) {
	query, args, err := qb.Update("flagged_events").
		Set("resolution_status", matching.ResolutionResolved).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build resolve flagged event query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("resolve flagged event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}
	return affected > 0, nil
}

const upsertFlaggedEventSuffix = `ON CONFLICT (game_id) DO UPDATE SET
	home_team = EXCLUDED.home_team,
	away_team = EXCLUDED.away_team,
	sport = EXCLUDED.sport,
	league = EXCLUDED.league,
	event_datetime = EXCLUDED.event_datetime,
	flag_reason = EXCLUDED.flag_reason,
	resolution_status = EXCLUDED.resolution_status,
	translated_sport = EXCLUDED.translated_sport,
	translated_league = EXCLUDED.translated_league,
	translated_home_team = EXCLUDED.translated_home_team,
	translated_away_team = EXCLUDED.translated_away_team,
	missing_elements = EXCLUDED.missing_elements,
	updated_at = NOW()`

func (r *FlaggedEventRepository) Upsert(ctx context.Context, ev matching.FlaggedEvent) error {
	missing := ev.MissingElements
	if missing == nil {
		missing = []string{}
	}

	query, args, err := qb.InsertModel("flagged_events", flaggedEventInsertModel{
		GameID:             ev.GameID,
		HomeTeam:           ev.HomeTeam,
		AwayTeam:           ev.AwayTeam,
		Sport:              ev.Sport,
		League:             ev.League,
		EventDatetime:      ev.EventDatetime,
		FlagReason:         ev.FlagReason,
		ResolutionStatus:   ev.ResolutionStatus,
		TranslatedSport:    ev.TranslatedSport,
		TranslatedLeague:   ev.TranslatedLeague,
		TranslatedHomeTeam: ev.TranslatedHomeTeam,
		TranslatedAwayTeam: ev.TranslatedAwayTeam,
		MissingElements:    pq.StringArray(missing),
	}, upsertFlaggedEventSuffix)
	if err != nil {
		return fmt.Errorf("build upsert flagged event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert flagged event game=%s: %w", ev.GameID, err)
	}
	return nil
}

func flaggedEventFromRow(row flaggedEventTableModel) matching.FlaggedEvent {
	ev := matching.FlaggedEvent{
		ID:                 row.ID,
		GameID:             row.GameID,
		HomeTeam:           row.HomeTeam,
		AwayTeam:           row.AwayTeam,
		Sport:              row.Sport,
		League:             row.League,
		FlagReason:         row.FlagReason,
		ResolutionStatus:   row.ResolutionStatus,
		TranslatedSport:    row.TranslatedSport,
		TranslatedLeague:   row.TranslatedLeague,
		TranslatedHomeTeam: row.TranslatedHomeTeam,
		TranslatedAwayTeam: row.TranslatedAwayTeam,
		MissingElements:    []string(row.MissingElements),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
	if row.EventDatetime.Valid {
		t := row.EventDatetime.Time
		ev.EventDatetime = &t
	}
	if ev.MissingElements == nil {
		ev.MissingElements = []string{}
	}
	return ev
}
