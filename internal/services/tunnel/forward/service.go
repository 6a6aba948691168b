package forward

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const (
	envelopeContentType = "application/x-sentry-envelope"
	maxDrainBytes       = 64 << 10
)

const (
	outcomeForwarded   = "forwarded"
	outcomeDecode      = "decode_error"
	outcomeMalformed   = "malformed"
	outcomeForbidden   = "forbidden"
	outcomeUpstream    = "upstream_error"
	outcomeUnavailable = "unavailable"
	outcomeInternal    = "internal"
)

type errorReporter interface {
	CaptureError(ctx context.Context, err error)
}

type outcomeRecorder interface {
	EnvelopeHandled(outcome string)
}

type Forwarder struct {
	log        logger.Logger
	httpClient *http.Client
	dest       Destination

	reporter errorReporter
	recorder outcomeRecorder
}

func New(log logger.Logger, httpClient *http.Client, dest Destination, reporter errorReporter, recorder outcomeRecorder) *Forwarder {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Forwarder{
		log:        log,
		httpClient: httpClient,
		dest:       dest,
		reporter:   reporter,
		recorder:   recorder,
	}
}

// Forward relays raw unmodified to the upstream ingest endpoint once its header
// names an allowed destination. Nothing is sent for a rejected envelope.
func (f *Forwarder) Forward(ctx context.Context, raw []byte) error {
	const op = "services.tunnel.Forward"

	header, err := ParseHeader(raw, f.dest)
	if err != nil {
		f.log.WarnContext(ctx, op,
			logger.Err(err),
			logger.Int("size", len(raw)),
		)
		f.record(rejectionOutcome(err))
		return err
	}

	endpoint := fmt.Sprintf("https://%s/api/%s/envelope/", f.dest.Host(), url.PathEscape(header.ProjectID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		f.log.ErrorContext(ctx, op, logger.Err(err))
		f.record(outcomeInternal)
		return fmt.Errorf("%s: %w: %v", op, internalErrors.ErrInternal, err)
	}
	req.Header.Set("Content-Type", envelopeContentType)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.ErrorContext(ctx, op, logger.Err(err), logger.String("project_id", header.ProjectID))
		err = fmt.Errorf("%s: %w: %v", op, internalErrors.ErrUpstreamUnavailable, err)
		f.report(ctx, err)
		f.record(outcomeUnavailable)
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := &internalErrors.UpstreamStatusError{StatusCode: resp.StatusCode}
		f.log.ErrorContext(ctx, op,
			logger.Int("status", resp.StatusCode),
			logger.String("project_id", header.ProjectID),
		)
		f.report(ctx, statusErr)
		f.record(outcomeUpstream)
		return fmt.Errorf("%s: %w", op, statusErr)
	}

	f.log.DebugContext(ctx, op, logger.String("project_id", header.ProjectID), logger.Int("size", len(raw)))
	f.record(outcomeForwarded)

	return nil
}

func rejectionOutcome(err error) string {
	switch {
	case errors.Is(err, internalErrors.ErrDecode):
		return outcomeDecode
	case errors.Is(err, internalErrors.ErrMalformedEnvelope):
		return outcomeMalformed
	case errors.Is(err, internalErrors.ErrForbiddenDestination):
		return outcomeForbidden
	default:
		return outcomeInternal
	}
}

func (f *Forwarder) report(ctx context.Context, err error) {
	if f.reporter != nil {
		f.reporter.CaptureError(ctx, err)
	}
}

func (f *Forwarder) record(outcome string) {
	if f.recorder != nil {
		f.recorder.EnvelopeHandled(outcome)
	}
}
