package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/repository/product"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

type Repository struct {
	log logger.Logger
	db  *sqlx.DB
}

func NewProductRepository(log logger.Logger, db *sqlx.DB) *Repository {
	return &Repository{
		log: log,
		db:  db,
	}
}

type productRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Price       float64        `db:"price"`
	Image       sql.NullString `db:"image"`
	Description sql.NullString `db:"description"`
}

// ordered by the table column: the id output alias is text and would sort "10" before "2"
const productsQuery = `SELECT id::text AS id, name, price, image, description FROM products ORDER BY products.id`

func (r *Repository) Products(ctx context.Context) ([]models.Product, error) {
	const op = "repository.product.postgres.Products"

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, productsQuery); err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: select products: %w", op, err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p := models.Product{
			ID:          row.ID,
			Name:        row.Name,
			Price:       row.Price,
			Image:       row.Image.String,
			Description: row.Description.String,
		}
		if err := product.Validate(p); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, p)
	}

	return products, nil
}
