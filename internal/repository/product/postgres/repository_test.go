package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/repository/product"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

var columns = []string{"id", "name", "price", "image", "description"}

func newRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewProductRepository(logger.NewDiscard(), sqlx.NewDb(db, "postgres")), mock
}

func TestProducts(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(productsQuery)).WillReturnRows(
		sqlmock.NewRows(columns).
			AddRow("1", "Whole Pineapple", 19.99, "whole-pineapple.jpg", "Fresh").
			AddRow("2", "Canned Pineapple", 29.99, "canned-pineapple.jpg", nil),
	)

	products, err := repo.Products(context.Background())
	require.NoError(t, err)
	require.Equal(t, []models.Product{
		{ID: "1", Name: "Whole Pineapple", Price: 19.99, Image: "whole-pineapple.jpg", Description: "Fresh"},
		{ID: "2", Name: "Canned Pineapple", Price: 29.99, Image: "canned-pineapple.jpg"},
	}, products)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductsErrors(t *testing.T) {
	tCases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		expErr error
	}{
		{
			name: "query_error",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(productsQuery)).WillReturnError(errors.New("connection refused"))
			},
		},
		{
			name: "negative_price",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(productsQuery)).WillReturnRows(
					sqlmock.NewRows(columns).AddRow("1", "Whole Pineapple", -1.0, "a.jpg", nil),
				)
			},
			expErr: product.ErrMalformedRow,
		},
		{
			name: "empty_name",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(productsQuery)).WillReturnRows(
					sqlmock.NewRows(columns).AddRow("1", "", 1.0, "a.jpg", nil),
				)
			},
			expErr: product.ErrMalformedRow,
		},
	}

	for _, tCase := range tCases {
		t.Run(tCase.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tCase.expect(mock)

			_, err := repo.Products(context.Background())
			require.Error(t, err)
			if tCase.expErr != nil {
				require.ErrorIs(t, err, tCase.expErr)
			}
		})
	}
}

func TestProductsOrderedByNumericColumn(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewProductRepository(logger.NewDiscard(), sqlx.NewDb(db, "postgres"))

	mock.ExpectQuery(`SELECT id::text AS id, name, price, image, description FROM products ORDER BY products.id`).
		WillReturnRows(
			sqlmock.NewRows(columns).
				AddRow("2", "Canned Pineapple", 29.99, nil, nil).
				AddRow("10", "Pineapple Jam", 12.5, nil, nil),
		)

	products, err := repo.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "2", products[0].ID)
	require.Equal(t, "10", products[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
