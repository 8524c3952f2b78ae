package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/odds-pipeline/internal/domain/bookmaker"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
)

type Handler struct {
	deliveryService *usecase.DeliveryService
	matchingService *usecase.MatchingService
	flaggedService  *usecase.FlaggedEventService
	bookmakers      *bookmaker.Resolver
	logger          *logging.Logger
	validator       *validator.Validate
	// batches ends delivery batches started over HTTP; see BindBatchContext.
	batches context.Context
}

func NewHandler(
	deliveryService *usecase.DeliveryService,
	matchingService *usecase.MatchingService,
	flaggedService *usecase.FlaggedEventService,
	bookmakers *bookmaker.Resolver,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if bookmakers == nil {
		bookmakers = bookmaker.NewDefaultResolver()
	}

	return &Handler{
		deliveryService: deliveryService,
		matchingService: matchingService,
		flaggedService:  flaggedService,
		bookmakers:      bookmakers,
		logger:          logger,
		validator:       validator.New(),
		batches:         context.Background(),
	}
}

// BindBatchContext ties delivery batches started over HTTP to ctx. Batches
// outlive the request that started them and stop when ctx is cancelled.
func (h *Handler) BindBatchContext(ctx context.Context) {
	if ctx != nil {
		h.batches = ctx
	}
}

// batchContext detaches ctx from the request and cancels it with the bound
// batch context.
func (h *Handler) batchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(h.batches, cancel)
	return detached, func() {
		stop()
		cancel()
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := handlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSON reads a strict JSON body into target. An empty body is accepted
// only when allowEmpty is set.
func decodeJSON(r *http.Request, target any, allowEmpty bool) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type sendAllRequest struct {
	Limit int `json:"limit" validate:"gte=0,lte=1000"`
}

type gameIDsRequest struct {
	GameIDs []string `json:"game_ids" validate:"required,min=1,max=500,dive,required"`
}

type resolveBookmakerQuery struct {
	Name string `validate:"required,max=200"`
}

type bookmakerDTO struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type resolvedBookmakerDTO struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Unknown bool   `json:"unknown"`
}

type matchingStatusesDTO struct {
	MatchingData any `json:"matching_data"`
}

type statsResetDTO struct {
	Reset bool `json:"reset"`
}

type flaggedEventResolvedDTO struct {
	GameID           string `json:"game_id"`
	ResolutionStatus string `json:"resolution_status"`
}

type flagEventRequest struct {
	GameID             string     `json:"game_id" validate:"required,max=200"`
	HomeTeam           string     `json:"home_team" validate:"required,max=200"`
	AwayTeam           string     `json:"away_team" validate:"required,max=200"`
	Sport              string     `json:"sport" validate:"required,max=100"`
	League             string     `json:"league" validate:"max=200"`
	EventDatetime      *time.Time `json:"event_datetime"`
	FlagReason         string     `json:"flag_reason" validate:"max=1000"`
	ResolutionStatus   string     `json:"resolution_status" validate:"omitempty,max=50"`
	TranslatedSport    string     `json:"translated_sport" validate:"max=100"`
	TranslatedLeague   string     `json:"translated_league" validate:"max=200"`
	TranslatedHomeTeam string     `json:"translated_home_team" validate:"max=200"`
	TranslatedAwayTeam string     `json:"translated_away_team" validate:"max=200"`
	MissingElements    []string   `json:"missing_elements" validate:"max=20,dive,required,max=100"`
}

type flaggedEventStoredDTO struct {
	GameID  string `json:"game_id"`
	Flagged bool   `json:"flagged"`
}
