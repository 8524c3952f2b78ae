package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/odds-pipeline/internal/usecase"
)

func (h *Handler) SendAllRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "SendAllRecords")
	defer span.End()

	if h.deliveryService == nil {
		writeError(ctx, w, fmt.Errorf("%w: delivery service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req sendAllRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	batchCtx, cancel := h.batchContext(ctx)
	defer cancel()
	result, err := h.deliveryService.SendAll(batchCtx, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "send all records failed", "limit", req.Limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SendRecordsByIDs(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "SendRecordsByIDs")
	defer span.End()

	if h.deliveryService == nil {
		writeError(ctx, w, fmt.Errorf("%w: delivery service is not configured", usecase.ErrDependencyUnavailable))
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

	batchCtx, cancel := h.batchContext(ctx)
	defer cancel()
	result, err := h.deliveryService.SendByIDs(batchCtx, req.GameIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "send records by ids failed", "game_ids", len(req.GameIDs), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) TestIngestionConnection(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "TestIngestionConnection")
	defer span.End()

	if h.deliveryService == nil {
		writeError(ctx, w, fmt.Errorf("%w: delivery service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.deliveryService.TestConnection(ctx))
}

func (h *Handler) GetDeliveryStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetDeliveryStats")
	defer span.End()

	if h.deliveryService == nil {
		writeError(ctx, w, fmt.Errorf("%w: delivery service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.deliveryService.Stats())
}

func (h *Handler) ResetDeliveryStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "ResetDeliveryStats")
	defer span.End()

	if h.deliveryService == nil {
		writeError(ctx, w, fmt.Errorf("%w: delivery service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	h.deliveryService.ResetStats()
	h.logger.InfoContext(ctx, "delivery stats reset")
	writeSuccess(ctx, w, http.StatusOK, statsResetDTO{Reset: true})
}

func (h *Handler) GetGameRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "GetGameRecord")
	defer span.End()

	if h.deliveryService == nil {
		writeError(ctx, w, fmt.Errorf("%w: delivery service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	rec, err := h.deliveryService.BuildRecord(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "build game record failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rec)
}
