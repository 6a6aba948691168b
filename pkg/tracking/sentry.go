// Package tracking reports errors to Sentry and exposes the active trace for propagation.
package tracking

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

type Config struct {
	DSN              string
	Environment      string
	TracesSampleRate float64
}

type Tracker struct {
	enabled bool
	handler *sentryhttp.Handler
}

// New initialises the Sentry SDK when a DSN is configured. Without one the
// tracker is still usable: captures are dropped and no trace is ever active.
func New(cfg Config) (*Tracker, error) {
	t := &Tracker{
		handler: sentryhttp.New(sentryhttp.Options{Repanic: true}),
	}

	if cfg.DSN == "" {
		return t, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		EnableTracing:    true,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("tracking.New: init sentry: %w", err)
	}

	t.enabled = true

	return t, nil
}

func (t *Tracker) Enabled() bool {
	return t.enabled
}

func (t *Tracker) CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.CaptureException(err)
}

// TraceHeaders returns sentry-trace and baggage headers for the span carried by ctx.
func (t *Tracker) TraceHeaders(ctx context.Context) (http.Header, bool) {
	span := sentry.SpanFromContext(ctx)
	if span == nil {
		return nil, false
	}

	header := http.Header{}
	header.Set(sentry.SentryTraceHeader, span.ToSentryTrace())
	if baggage := span.ToBaggage(); baggage != "" {
		header.Set(sentry.SentryBaggageHeader, baggage)
	}

	return header, true
}

// Middleware binds a hub and a transaction to every request.
func (t *Tracker) Middleware(next http.Handler) http.Handler {
	return t.handler.Handle(next)
}

func (t *Tracker) Flush(timeout time.Duration) {
	if t.enabled {
		sentry.Flush(timeout)
	}
}
