// Package product holds what the catalog repositories share.
package product

import (
	"errors"
	"fmt"

	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
)

var ErrMalformedRow = errors.New("malformed product row")

// Validate rejects rows that cannot be served as a product.
func Validate(p models.Product) error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrMalformedRow)
	case p.Name == "":
		return fmt.Errorf("%w: product %s has empty name", ErrMalformedRow, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: product %s has negative price", ErrMalformedRow, p.ID)
	}

	return nil
}
