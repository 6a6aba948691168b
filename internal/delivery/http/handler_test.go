package storefront_http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/metrics"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

type trackerSpy struct {
	paths []string
}

func (t *trackerSpy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.paths = append(t.paths, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func stubRoutes() Routes {
	ok := func(status int) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}
	}

	return Routes{
		Products: ok(http.StatusOK),
		Orders:   ok(http.StatusCreated),
		Tunnel:   ok(http.StatusOK),
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader("")))
	return rec
}

func TestRoutes(t *testing.T) {
	h := NewHandler(logger.NewDiscard(), stubRoutes(), nil, metrics.New(), nil).InitRoutes()

	tCases := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "products", method: http.MethodGet, target: "/products", wantStatus: http.StatusOK},
		{name: "orders", method: http.MethodPost, target: "/orders", wantStatus: http.StatusCreated},
		{name: "tunnel", method: http.MethodPost, target: "/tunnel", wantStatus: http.StatusOK},
		{name: "healthcheck", method: http.MethodGet, target: "/healthcheck", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "wrong method", method: http.MethodGet, target: "/orders", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown", method: http.MethodGet, target: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			rec := serve(h, tCase.method, tCase.target)
			require.Equal(t, tCase.wantStatus, rec.Code)
		})
	}
}

func TestHealthcheck(t *testing.T) {
	h := NewHandler(logger.NewDiscard(), stubRoutes(), nil, nil, nil).InitRoutes()

	rec := serve(h, http.MethodGet, "/healthcheck")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	h := NewHandler(logger.NewDiscard(), stubRoutes(), nil, nil, nil).InitRoutes()

	rec := serve(h, http.MethodGet, "/products")
	_, err := uuid.Parse(rec.Header().Get("X-Request-Id"))
	require.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Request-Id", incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, incoming, rec.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEqual(t, "not-a-uuid", rec.Header().Get("X-Request-Id"))
}

func TestTelemetrySkipsHealthcheck(t *testing.T) {
	tracker := &trackerSpy{}
	m := metrics.New()
	h := NewHandler(logger.NewDiscard(), stubRoutes(), tracker, m, nil).InitRoutes()

	serve(h, http.MethodGet, "/healthcheck")
	serve(h, http.MethodGet, "/metrics")
	serve(h, http.MethodGet, "/products")

	require.Equal(t, []string{"/products"}, tracker.paths)

	expected := `
		# HELP storefront_http_requests_total Total number of HTTP requests handled.
		# TYPE storefront_http_requests_total counter
		storefront_http_requests_total{method="GET",route="/products",status="200"} 1
	`
	require.NoError(t, testutil.CollectAndCompare(m.Registry(), strings.NewReader(expected), "storefront_http_requests_total"))
}

func TestRecoverer(t *testing.T) {
	routes := stubRoutes()
	routes.Orders = func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}

	h := NewHandler(logger.NewDiscard(), routes, nil, nil, nil).InitRoutes()

	rec := serve(h, http.MethodPost, "/orders")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = serve(h, http.MethodGet, "/healthcheck")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTunnelRateLimit(t *testing.T) {
	limiter := NewRateLimiter(logger.NewDiscard(), 0.001, 2)
	h := NewHandler(logger.NewDiscard(), stubRoutes(), nil, nil, limiter).InitRoutes()

	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/tunnel").Code)
	require.Equal(t, http.StatusOK, serve(h, http.MethodPost, "/tunnel").Code)

	rec := serve(h, http.MethodPost, "/tunnel")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())

	// other routes are not limited
	require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/products").Code)
}

func TestNewRateLimiterDisabled(t *testing.T) {
	require.Nil(t, NewRateLimiter(logger.NewDiscard(), 0, 10))
}
