package httpapi

import (
	"net/http"

	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
	// RequestBodyMaxBytes > 0 attaches up to that many request body bytes to the server span.
	RequestBodyMaxBytes int
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerReadRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	var next http.Handler = CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))
	next = RequestLogging(logger, next)
	if cfg.RequestBodyMaxBytes > 0 {
		next = CaptureRequestBody(cfg.RequestBodyMaxBytes, next)
	}
	return RequestTracing(next)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
