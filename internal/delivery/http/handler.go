package storefront_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpresponse "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/http"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const (
	healthcheckPath = "/healthcheck"
	metricsPath     = "/metrics"
)

type tracker interface {
	Middleware(next http.Handler) http.Handler
}

type Routes struct {
	Products http.HandlerFunc
	Orders   http.HandlerFunc
	Tunnel   http.HandlerFunc
}

type Handler struct {
	log logger.Logger

	routes  Routes
	tracker tracker
	metrics httpMetrics
	limiter *RateLimiter
}

// NewHandler wires the HTTP surface. tracker, metrics and limiter may be nil.
func NewHandler(log logger.Logger, routes Routes, tracker tracker, metrics httpMetrics, limiter *RateLimiter) *Handler {
	return &Handler{
		log:     log,
		routes:  routes,
		tracker: tracker,
		metrics: metrics,
		limiter: limiter,
	}
}

func (h *Handler) InitRoutes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(requestID)
	mux.Use(h.trace)
	mux.Use(h.observe)

	mux.Get(healthcheckPath, healthcheck)
	mux.Get("/products", h.routes.Products)
	mux.Post("/orders", h.routes.Orders)

	if h.limiter != nil {
		mux.With(h.limiter.Handler).Post("/tunnel", h.routes.Tunnel)
	} else {
		mux.Post("/tunnel", h.routes.Tunnel)
	}

	if h.metrics != nil {
		mux.Method(http.MethodGet, metricsPath, h.metrics.Handler())
	}

	return mux
}

func healthcheck(w http.ResponseWriter, _ *http.Request) {
	_ = httpresponse.JSON(w, http.StatusOK, httpresponse.H{"status": "ok"})
}
