package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// NewRouter mounts health probes, the credit read API and, when non-nil,
// the Prometheus scrape handler at /metrics. A nil limiter disables rate
// limiting.
func NewRouter(health *HealthHandler, credit *CreditHandler, metrics http.Handler, limiter *RateLimiter, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(accessLog(logger))
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	health.RegisterRoutes(r)
	credit.RegisterRoutes(r)
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods(http.MethodGet)
	}
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			logger.DebugContext(r.Context(), "http request",
				"method", r.Method,
				"route", route,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
