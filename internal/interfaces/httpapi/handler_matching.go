package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
)

func (h *Handler) ResolveMatchingStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ResolveMatchingStatuses")
	defer span.End()

	if h.matchingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: matching service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req gameIDsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	statuses := h.matchingService.ResolveMany(ctx, req.GameIDs)
	writeSuccess(ctx, w, http.StatusOK, matchingStatusesDTO{MatchingData: statuses})
}

func (h *Handler) GetMatchingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetMatchingStatus")
	defer span.End()

	if h.matchingService == nil {
		writeError(ctx, w, fmt.Errorf("%w: matching service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if gameID == "" {
		writeError(ctx, w, fmt.Errorf("%w: game id is required", usecase.ErrInvalidInput))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.matchingService.Resolve(ctx, gameID))
}

func (h *Handler) ListFlaggedEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ListFlaggedEvents")
	defer span.End()

	if h.flaggedService == nil {
		writeError(ctx, w, fmt.Errorf("%w: flagged event store is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	filter := matching.FlaggedEventFilter{
		ResolutionStatus: r.URL.Query().Get("status"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput))
			return
		}
		filter.Limit = limit
	}

	list, err := h.flaggedService.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list flagged events failed", "status", filter.ResolutionStatus, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, list)
}

func (h *Handler) ResolveFlaggedEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ResolveFlaggedEvent")
	defer span.End()

	if h.flaggedService == nil {
		writeError(ctx, w, fmt.Errorf("%w: flagged event store is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	if err := h.flaggedService.Resolve(ctx, gameID); err != nil {
		h.logger.WarnContext(ctx, "resolve flagged event failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if h.matchingService != nil {
		h.matchingService.Invalidate(ctx, gameID)
	}

	writeSuccess(ctx, w, http.StatusOK, flaggedEventResolvedDTO{
		GameID:           gameID,
		ResolutionStatus: matching.ResolutionResolved,
	})
}

func (h *Handler) FlagEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "FlagEvent")
	defer span.End()

	if h.flaggedService == nil {
		writeError(ctx, w, fmt.Errorf("%w: flagged event store is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req flagEventRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.flaggedService.Flag(ctx, matching.FlaggedEvent{
		GameID:             req.GameID,
		HomeTeam:           req.HomeTeam,
		AwayTeam:           req.AwayTeam,
		Sport:              req.Sport,
		League:             req.League,
		EventDatetime:      req.EventDatetime,
		FlagReason:         req.FlagReason,
		ResolutionStatus:   req.ResolutionStatus,
		TranslatedSport:    req.TranslatedSport,
		TranslatedLeague:   req.TranslatedLeague,
		TranslatedHomeTeam: req.TranslatedHomeTeam,
		TranslatedAwayTeam: req.TranslatedAwayTeam,
		MissingElements:    req.MissingElements,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "flag event failed", "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if h.matchingService != nil {
		h.matchingService.Invalidate(ctx, req.GameID)
	}

	writeSuccess(ctx, w, http.StatusOK, flaggedEventStoredDTO{GameID: req.GameID, Flagged: true})
}
