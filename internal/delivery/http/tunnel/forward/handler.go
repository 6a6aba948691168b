package forward

import (
	"context"
	"errors"
	"io"
	"net/http"

	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
	httpresponse "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/http"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

type envelopeForwarder interface {
	Forward(ctx context.Context, raw []byte) error
}

type Handler struct {
	log logger.Logger

	forwarder    envelopeForwarder
	maxBodyBytes int64
}

func NewHandler(log logger.Logger, forwarder envelopeForwarder, maxBodyBytes int64) *Handler {
	return &Handler{
		log:          log,
		forwarder:    forwarder,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *Handler) Forward(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.tunnel.Forward"

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.WarnContext(r.Context(), op, logger.Int("limit", int(tooLarge.Limit)))
			httpresponse.Error(w, http.StatusRequestEntityTooLarge, "envelope too large")
			return
		}

		h.log.ErrorContext(r.Context(), op, logger.String("failed to read envelope", err.Error()))
		httpresponse.Error(w, http.StatusInternalServerError, "failed to read envelope")
		return
	}

	if err = h.forwarder.Forward(r.Context(), raw); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		httpresponse.Error(w, http.StatusInternalServerError, publicMessage(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, internalErrors.ErrDecode):
		return internalErrors.ErrDecode.Error()
	case errors.Is(err, internalErrors.ErrMalformedEnvelope):
		return internalErrors.ErrMalformedEnvelope.Error()
	case errors.Is(err, internalErrors.ErrForbiddenDestination):
		return internalErrors.ErrForbiddenDestination.Error()
	case errors.Is(err, internalErrors.ErrUpstreamUnavailable):
		return internalErrors.ErrUpstreamUnavailable.Error()
	case errors.Is(err, internalErrors.ErrUpstream):
		return internalErrors.ErrUpstream.Error()
	default:
		return "failed to forward envelope"
	}
}
