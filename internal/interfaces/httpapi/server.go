package httpapi

import (
	"net/http"

	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/metrics"
)

type RouterConfig struct {
	ServiceName         string
	CORSAllowedOrigins  []string
	ImportToken         string
	MaxBodyBytes        int64
	CaptureRequestBody  bool
	RequestBodyMaxBytes int
	Metrics             *metrics.Metrics
	Logger              *logging.Logger
}

// NewRouter wires the routes behind, from the outside in: tracing, body
// capture, logging, metrics, CORS, body limit and panic recovery.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerReadRoutes(mux, handler)
	registerImportRoutes(mux, handler, cfg.ImportToken)

	var h http.Handler = recoverPanic(logger, mux)
	h = LimitBody(cfg.MaxBodyBytes, h)
	h = CORS(cfg.CORSAllowedOrigins, h)
	h = cfg.Metrics.Middleware(h)
	h = RequestLogging(logger, h)
	h = CaptureRequestBody(cfg.CaptureRequestBody, cfg.RequestBodyMaxBytes, h)
	return RequestTracing(cfg.ServiceName, h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
