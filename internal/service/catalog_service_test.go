package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trademart/catalog_api/internal/repository"
	"github.com/trademart/catalog_api/internal/utils"
)

func newCatalogService(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	svc := NewCatalogService(
		repository.NewProductRepository(sqlxDB),
		repository.NewProductTypeRepository(sqlxDB),
		repository.NewPreferenceRepository(sqlxDB),
		repository.NewUserRepository(sqlxDB),
		nil,
	)
	return svc, mock
}

func listRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "price", "quantity", "city",
		"image_path", "active", "date_created", "user_id", "product_type_id",
	})
}

func detailRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "price", "quantity", "city",
		"image_path", "active", "date_created", "user_id", "product_type_id",
		"product_type_label",
	})
}

func userRows(id int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
		AddRow(id, "buyer@example.com", "x", "Buyer", time.Now())
}

// The catalog holds Red Bike/Denver and Blue Bike/Austin. A title filter
// alone matches both; adding the city filter narrows to one; a
// non-matching title yields none.
func TestListProductsFilterScenario(t *testing.T) {
	now := time.Now()

	t.Run("title matches both", func(t *testing.T) {
		svc, mock := newCatalogService(t)
		mock.ExpectQuery("FROM products WHERE title ILIKE").
			WithArgs("Bike").
			WillReturnRows(listRows().
				AddRow(1, "Red Bike", "", "120.00", 1, "Denver", "", true, now, 7, 3).
				AddRow(2, "Blue Bike", "", "75.50", 1, "Austin", "", true, now, 8, 3))

		products, err := svc.ListProducts(context.Background(), "Bike", "")
		require.NoError(t, err)
		require.Len(t, products, 2)
	})

	t.Run("title and city are conjunctive", func(t *testing.T) {
		svc, mock := newCatalogService(t)
		mock.ExpectQuery("FROM products WHERE title ILIKE (.+) AND city ILIKE").
			WithArgs("Bike", "Denver").
			WillReturnRows(listRows().
				AddRow(1, "Red Bike", "", "120.00", 1, "Denver", "", true, now, 7, 3))

		products, err := svc.ListProducts(context.Background(), "Bike", "Denver")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Red Bike", products[0].Title)
	})

	t.Run("no match yields empty result, not an error", func(t *testing.T) {
		svc, mock := newCatalogService(t)
		mock.ExpectQuery("FROM products WHERE title ILIKE").
			WithArgs("Truck").
			WillReturnRows(listRows())

		products, err := svc.ListProducts(context.Background(), "Truck", "")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGetProductDetailShowsButtonsWithoutPriorReaction(t *testing.T) {
	svc, mock := newCatalogService(t)
	now := time.Now()

	mock.ExpectQuery("FROM products p").
		WithArgs(5).
		WillReturnRows(detailRows().
			AddRow(5, "Red Bike", "a bike", "120.00", 1, "Denver", "", true, now, 7, 3, "Sporting Goods"))
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(9).
		WillReturnRows(userRows(9))
	mock.ExpectQuery("SELECT COUNT(.+) FROM preferences").
		WithArgs(5, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	view, err := svc.GetProductDetail(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, 5, view.ProductID)
	assert.Equal(t, "Red Bike", view.Title)
	assert.Equal(t, "Sporting Goods", view.ProductType.Label)
	assert.True(t, view.HasLikeButton)
	assert.True(t, view.HasDislikeButton)
}

func TestGetProductDetailHidesButtonsAfterReaction(t *testing.T) {
	svc, mock := newCatalogService(t)
	now := time.Now()

	mock.ExpectQuery("FROM products p").
		WithArgs(5).
		WillReturnRows(detailRows().
			AddRow(5, "Red Bike", "a bike", "120.00", 1, "Denver", "", true, now, 7, 3, "Sporting Goods"))
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(9).
		WillReturnRows(userRows(9))
	mock.ExpectQuery("SELECT COUNT(.+) FROM preferences").
		WithArgs(5, 9).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	view, err := svc.GetProductDetail(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.False(t, view.HasLikeButton)
	assert.False(t, view.HasDislikeButton)
}

func TestGetProductDetailMissingProduct(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery("FROM products p").
		WithArgs(999).
		WillReturnRows(detailRows())

	_, err := svc.GetProductDetail(context.Background(), 999, 9)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestCreateProductCopiesInputVerbatim(t *testing.T) {
	svc, mock := newCatalogService(t)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(7).
		WillReturnRows(userRows(7))
	mock.ExpectQuery("FROM product_types WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow(3, "Sporting Goods"))
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("Blue Bike", "another bike", sqlmock.AnyArg(), 2, "Austin", "/img/b.png", true, created, 7, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	req := &CreateProductRequest{
		Title:         "Blue Bike",
		Description:   "another bike",
		Price:         decimal.RequireFromString("75.50"),
		Quantity:      2,
		City:          "Austin",
		ImagePath:     "/img/b.png",
		Active:        true,
		DateCreated:   created,
		ProductTypeID: 3,
	}
	product, err := svc.CreateProduct(context.Background(), req, 7)
	require.NoError(t, err)
	assert.Equal(t, 42, product.ID)
	assert.Equal(t, 7, product.UserID)
	assert.Equal(t, "Blue Bike", product.Title)
	assert.Equal(t, created, product.DateCreated)
	assert.True(t, product.Price.Equal(req.Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductUnknownType(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(7).
		WillReturnRows(userRows(7))
	mock.ExpectQuery("FROM product_types WHERE id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}))

	_, err := svc.CreateProduct(context.Background(), &CreateProductRequest{ProductTypeID: 99}, 7)
	assert.ErrorIs(t, err, utils.ErrProductTypeNotFound)
}

func TestCreateProductPersistenceFailure(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(7).
		WillReturnRows(userRows(7))
	mock.ExpectQuery("FROM product_types WHERE id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow(3, "Sporting Goods"))
	mock.ExpectQuery("INSERT INTO products").
		WillReturnError(errors.New("disk full"))

	_, err := svc.CreateProduct(context.Background(), &CreateProductRequest{ProductTypeID: 3, DateCreated: time.Now()}, 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, utils.ErrProductTypeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProductRequiresOwnership(t *testing.T) {
	svc, mock := newCatalogService(t)
	now := time.Now()

	mock.ExpectQuery("FROM products p").
		WithArgs(5).
		WillReturnRows(detailRows().
			AddRow(5, "Red Bike", "", "120.00", 1, "Denver", "", true, now, 7, 3, "Sporting Goods"))

	_, err := svc.UpdateProduct(context.Background(), 5, &UpdateProductRequest{ProductTypeID: 3}, 8)
	assert.ErrorIs(t, err, utils.ErrNotOwner)
}

func TestDeleteProduct(t *testing.T) {
	svc, mock := newCatalogService(t)
	now := time.Now()

	mock.ExpectQuery("FROM products p").
		WithArgs(5).
		WillReturnRows(detailRows().
			AddRow(5, "Red Bike", "", "120.00", 1, "Denver", "", true, now, 7, 3, "Sporting Goods"))
	mock.ExpectExec("DELETE FROM products").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.DeleteProduct(context.Background(), 5, 7))

	t.Run("missing product", func(t *testing.T) {
		svc, mock := newCatalogService(t)
		mock.ExpectQuery("FROM products p").
			WithArgs(999).
			WillReturnRows(detailRows())

		err := svc.DeleteProduct(context.Background(), 999, 7)
		assert.ErrorIs(t, err, utils.ErrProductNotFound)
	})
}

func TestProductTypeOptions(t *testing.T) {
	svc, mock := newCatalogService(t)

	mock.ExpectQuery("FROM product_types ORDER BY label").
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).
			AddRow(1, "Appliances").
			AddRow(3, "Sporting Goods"))

	options, err := svc.ProductTypeOptions(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Appliances", options[0].Text)
	assert.Equal(t, 1, options[0].Value)
	assert.Equal(t, "Sporting Goods", options[1].Text)
	assert.Equal(t, 3, options[1].Value)
}
