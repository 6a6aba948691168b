package list

import (
	"context"
	"net/http"

	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	httpresponse "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/http"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const sourceHeader = "X-Products-Source"

type productLister interface {
	List(ctx context.Context) ([]models.Product, models.ProductSource)
}

type Handler struct {
	log logger.Logger

	productLister productLister
}

func NewHandler(log logger.Logger, productLister productLister) *Handler {
	return &Handler{
		log:           log,
		productLister: productLister,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "delivery.http.product.List"

	products, source := h.productLister.List(r.Context())
	if products == nil {
		products = []models.Product{}
	}

	w.Header().Set(sourceHeader, string(source))

	if err := httpresponse.JSON(w, http.StatusOK, products); err != nil {
		h.log.ErrorContext(r.Context(), op, logger.Err(err))
	}
}
