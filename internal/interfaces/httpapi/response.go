package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/odds-pipeline/internal/domain/delivery"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Responses follow the Google JSON style guide: {"apiVersion", "data"} on
// success and {"apiVersion", "error"} on failure.
const (
	apiVersion  = "2.0"
	errorDomain = "odds-pipeline"
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorMappings is checked in order; the first match wins.
var errorMappings = []struct {
	matches func(error) bool
	mapped  mappedError
}{
	{isErr(usecase.ErrInvalidInput), mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{isErr(usecase.ErrNotFound), mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{isErr(usecase.ErrUnauthorized), mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{isErr(usecase.ErrDependencyUnavailable), mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{func(err error) bool { return errors.As(err, new(*delivery.Error)) }, mappedError{http.StatusBadGateway, "deliveryFailed", "UNAVAILABLE"}},
}

func isErr(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		if m.matches(err) {
			return m.mapped
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError maps err to a status code and records 5xx answers on the
// active span.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Reason)
	}
	writeProblem(w, mapped, err.Error())
}

// writeInternalError answers 500 without exposing the cause.
func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeProblem(w, internalError, "internal server error")
}

func writeProblem(w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(w, mapped.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}
