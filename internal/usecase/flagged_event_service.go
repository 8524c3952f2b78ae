package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
)

const (
	defaultFlaggedEventLimit = 100
	maxFlaggedEventLimit     = 1000
)

var flagResolutions = map[string]struct{}{
	matching.StatusPending:          {},
	"unmatched":                     {},
	matching.StatusReadyForCreation: {},
	"ready_for_api_creation":        {},
	matching.StatusExistsInOmenizer: {},
	"already_exists":                {},
}

type FlaggedEventList struct {
	Events []matching.FlaggedEvent `json:"events"`
	Counts map[string]int          `json:"counts"`
}

type FlaggedEventService struct {
	repo matching.FlaggedEventRepository
}

func NewFlaggedEventService(repo matching.FlaggedEventRepository) *FlaggedEventService {
	return &FlaggedEventService{repo: repo}
}

func (s *FlaggedEventService) List(ctx context.Context, filter matching.FlaggedEventFilter) (FlaggedEventList, error) {
	ctx, span := startSpan(ctx, "usecase.FlaggedEventService.List")
	defer span.End()

	filter.ResolutionStatus = strings.ToLower(strings.TrimSpace(filter.ResolutionStatus))
	if filter.Limit < 0 {
		return FlaggedEventList{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultFlaggedEventLimit
	}
	if filter.Limit > maxFlaggedEventLimit {
		filter.Limit = maxFlaggedEventLimit
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return FlaggedEventList{}, fmt.Errorf("list flagged events: %w", err)
	}
	counts, err := s.repo.CountByResolution(ctx)
	if err != nil {
		return FlaggedEventList{}, fmt.Errorf("count flagged events: %w", err)
	}
	if events == nil {
		events = []matching.FlaggedEvent{}
	}

	return FlaggedEventList{Events: events, Counts: counts}, nil
}

// Resolve marks the flag of gameID as resolved so the index stops reporting it.
func (s *FlaggedEventService) Resolve(ctx context.Context, gameID string) error {
	ctx, span := startSpan(ctx, "usecase.FlaggedEventService.Resolve")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	updated, err := s.repo.MarkResolved(ctx, gameID)
	if err != nil {
		return fmt.Errorf("resolve flagged event: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: flagged event for game=%s", ErrNotFound, gameID)
	}
	return nil
}

// Flag records ev in the index. A blank resolution status means pending.
func (s *FlaggedEventService) Flag(ctx context.Context, ev matching.FlaggedEvent) error {
	ctx, span := startSpan(ctx, "usecase.FlaggedEventService.Flag")
	defer span.End()

	ev.GameID = strings.TrimSpace(ev.GameID)
	ev.HomeTeam = strings.TrimSpace(ev.HomeTeam)
	ev.AwayTeam = strings.TrimSpace(ev.AwayTeam)
	ev.Sport = strings.TrimSpace(ev.Sport)
	ev.League = strings.TrimSpace(ev.League)
	switch {
	case ev.GameID == "":
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	case ev.HomeTeam == "" || ev.AwayTeam == "":
		return fmt.Errorf("%w: home and away team are required", ErrInvalidInput)
	case ev.Sport == "":
		return fmt.Errorf("%w: sport is required", ErrInvalidInput)
	}

	ev.ResolutionStatus = strings.ToLower(strings.TrimSpace(ev.ResolutionStatus))
	if ev.ResolutionStatus == "" {
		ev.ResolutionStatus = matching.StatusPending
	}
	if _, ok := flagResolutions[ev.ResolutionStatus]; !ok {
		return fmt.Errorf("%w: unsupported resolution status %q", ErrInvalidInput, ev.ResolutionStatus)
	}
	if strings.TrimSpace(ev.FlagReason) == "" && len(ev.MissingElements) > 0 {
		ev.FlagReason = "Missing translations: " + strings.Join(ev.MissingElements, ", ")
	}

	if err := s.repo.Upsert(ctx, ev); err != nil {
		return fmt.Errorf("flag event: %w", err)
	}
	return nil
}
