package storefront_http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

type ctxKey struct{}

type httpMetrics interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	Handler() http.Handler
}

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func skipTelemetry(r *http.Request) bool {
	return r.URL.Path == healthcheckPath || r.URL.Path == metricsPath
}

func (h *Handler) trace(next http.Handler) http.Handler {
	if h.tracker == nil {
		return next
	}

	traced := h.tracker.Middleware(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipTelemetry(r) {
			next.ServeHTTP(w, r)
			return
		}
		traced.ServeHTTP(w, r)
	})
}

// observe logs and measures every request except healthchecks and scrapes.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipTelemetry(r) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		duration := time.Since(start)

		if h.metrics != nil {
			h.metrics.RecordHTTPRequest(r.Method, route, status, duration)
		}

		h.log.InfoContext(r.Context(), "http request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", duration),
			logger.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}
