package create

import (
	"strings"

	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
)

// Validate checks an order before anything leaves the process.
func Validate(req *models.OrderRequest) error {
	if req == nil {
		return internalErrors.Validation("order is required")
	}

	if strings.TrimSpace(req.UserID) == "" {
		return internalErrors.Validation("user_id is required")
	}

	if len(req.Items) == 0 {
		return internalErrors.Validation("items can't be empty")
	}

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return internalErrors.Validation("items[%d].quantity must be a positive integer", i)
		}
		if item.PriceAtPurchase < 0 {
			return internalErrors.Validation("items[%d].price_at_purchase must not be negative", i)
		}
	}

	return nil
}
