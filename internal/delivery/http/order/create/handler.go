package create

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
	httpresponse "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/http"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const (
	responseSourceHeader = "X-Response-Source"
	responseSource       = "order-function"

	maxRequestBytes = 1 << 20
)

type orderCreator interface {
	Create(ctx context.Context, order *models.OrderRequest) (*models.CreatedOrder, error)
}

type Handler struct {
	log logger.Logger

	orderCreator orderCreator
}

func NewHandler(log logger.Logger, orderCreator orderCreator) *Handler {
	return &Handler{
		log:          log,
		orderCreator: orderCreator,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.order.Create"
	var request CreateOrderRequest

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request)
	if err != nil {
		h.log.WarnContext(r.Context(), op, logger.String("failed to decode request", err.Error()))
		httpresponse.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err = request.validate(); err != nil {
		h.log.WarnContext(r.Context(), op, logger.String("failed to validate request", err.Error()))
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order := request.toDTO()
	created, err := h.orderCreator.Create(r.Context(), &order)
	if err != nil {
		h.writeError(w, r, op, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(responseSourceHeader, responseSource)
	w.WriteHeader(http.StatusCreated)

	if _, err = w.Write(created.Raw); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.String("failed to write response", err.Error()))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var rejected *internalErrors.UpstreamRejectedError

	switch {
	case errors.Is(err, internalErrors.ErrValidation):
		h.log.WarnContext(r.Context(), op, logger.Err(err))
		httpresponse.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, internalErrors.ErrUpstreamUnavailable):
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		httpresponse.Error(w, http.StatusServiceUnavailable, "order service unavailable")
	case errors.As(err, &rejected):
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		httpresponse.Error(w, rejectedStatus(rejected.StatusCode), rejected.Message)
	default:
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
		httpresponse.Error(w, http.StatusInternalServerError, "failed to create order")
	}
}

// rejectedStatus mirrors the collaborator's status unless it would read as success.
func rejectedStatus(status int) int {
	if status < http.StatusBadRequest || status > 599 {
		return http.StatusBadGateway
	}
	return status
}
