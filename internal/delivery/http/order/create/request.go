package create

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	internalErrors "github.com/tumbleweedd/pineapple_store/storefront_service/internal/lib/errors"
)

var validate = newValidator()

type CreateOrderRequest struct {
	UserID string      `json:"user_id" validate:"required"`
	Items  []OrderItem `json:"items" validate:"required,min=1,dive"`
}

type OrderItem struct {
	ProductID       string   `json:"product_id"`
	Quantity        int      `json:"quantity" validate:"gt=0"`
	PriceAtPurchase *float64 `json:"price_at_purchase" validate:"required,gte=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func (req *CreateOrderRequest) validate() error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return internalErrors.Validation("%s", describe(fieldErrs[0]))
	}

	return internalErrors.Validation("%s", err.Error())
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " can't be empty"
	case "gt":
		return field + " must be a positive integer"
	case "gte":
		return field + " must not be negative"
	default:
		return field + " is invalid"
	}
}

func (req *CreateOrderRequest) toDTO() models.OrderRequest {
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		var price float64
		if item.PriceAtPurchase != nil {
			price = *item.PriceAtPurchase
		}

		items = append(items, models.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: price,
		})
	}

	return models.OrderRequest{
		UserID: req.UserID,
		Items:  items,
	}
}
