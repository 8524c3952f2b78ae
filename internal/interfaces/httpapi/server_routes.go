package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/bookmakers", handler.ListBookmakers)
	mux.HandleFunc("GET /v1/bookmakers/resolve", handler.ResolveBookmaker)
	mux.HandleFunc("GET /v1/games/{gameID}/record", handler.GetGameRecord)
	mux.HandleFunc("GET /v1/deliveries/stats", handler.GetDeliveryStats)
	// Batch status lookup takes a body, so it is a POST without side effects.
	mux.HandleFunc("POST /v1/matching/status", handler.ResolveMatchingStatuses)
	mux.HandleFunc("GET /v1/matching/status/{gameID}", handler.GetMatchingStatus)
	mux.HandleFunc("GET /v1/flagged-events", handler.ListFlaggedEvents)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	guard := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}

	mux.Handle("POST /v1/deliveries/send-all", guard(handler.SendAllRecords))
	mux.Handle("POST /v1/deliveries/send-by-ids", guard(handler.SendRecordsByIDs))
	mux.Handle("POST /v1/deliveries/test-connection", guard(handler.TestIngestionConnection))
	mux.Handle("DELETE /v1/deliveries/stats", guard(handler.ResetDeliveryStats))
	mux.Handle("POST /v1/flagged-events", guard(handler.FlagEvent))
	mux.Handle("POST /v1/flagged-events/{gameID}/resolve", guard(handler.ResolveFlaggedEvent))
}
