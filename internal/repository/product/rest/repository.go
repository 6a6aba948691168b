package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/repository/product"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

const productsQuery = "select=id,name,price,image,description&order=id"

type selector interface {
	Select(ctx context.Context, table, query string) ([]byte, error)
}

// Repository reads the catalog through the Supabase REST endpoint.
type Repository struct {
	log      logger.Logger
	selector selector
	table    string
}

func NewProductRepository(log logger.Logger, selector selector, table string) *Repository {
	if table == "" {
		table = "products"
	}

	return &Repository{
		log:      log,
		selector: selector,
		table:    table,
	}
}

func (r *Repository) Products(ctx context.Context) ([]models.Product, error) {
	const op = "repository.product.rest.Products"

	body, err := r.selector.Select(ctx, r.table, productsQuery)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w: response is not json", op, product.ErrMalformedRow)
	}

	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return nil, fmt.Errorf("%s: %w: response is not an array", op, product.ErrMalformedRow)
	}

	rows := result.Array()
	products := make([]models.Product, 0, len(rows))

	for i, row := range rows {
		p, err := toProduct(row)
		if err != nil {
			r.log.Error(op, logger.Int("row", i), logger.Err(err))
			return nil, fmt.Errorf("%s: row %d: %w", op, i, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func toProduct(row gjson.Result) (models.Product, error) {
	if !row.IsObject() {
		return models.Product{}, fmt.Errorf("%w: row is not an object", product.ErrMalformedRow)
	}

	price, err := parsePrice(row.Get("price"))
	if err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:          row.Get("id").String(),
		Name:        row.Get("name").String(),
		Price:       price,
		Image:       row.Get("image").String(),
		Description: row.Get("description").String(),
	}

	return p, product.Validate(p)
}

func parsePrice(value gjson.Result) (float64, error) {
	switch value.Type {
	case gjson.Number:
		return value.Float(), nil
	case gjson.String:
		price, err := strconv.ParseFloat(value.Str, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: price %q is not a number", product.ErrMalformedRow, value.Str)
		}
		return price, nil
	default:
		return 0, fmt.Errorf("%w: price is missing", product.ErrMalformedRow)
	}
}
