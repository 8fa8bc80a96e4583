package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shophop/internal/domain/entity"
	apperrors "shophop/pkg/errors"
)

func TestProductGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		m := newMockDB(t)
		repo := NewGormProductRepository(m.db)

		rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "user_id"}).
			AddRow(2, "Mechanical keyboard", "79.99", "Tenkeyless", "a3")
		m.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(2, 1).
			WillReturnRows(rows)

		product, err := repo.GetByID(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, uint(2), product.ID)
		assert.Equal(t, "79.99", product.Price.StringFixed(2))
	})

	t.Run("not found", func(t *testing.T) {
		m := newMockDB(t)
		repo := NewGormProductRepository(m.db)

		m.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(404, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 404)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, "NOT_FOUND"))
	})
}

func TestProductGetPage(t *testing.T) {
	ctx := context.Background()

	m := newMockDB(t)
	repo := NewGormProductRepository(m.db)

	m.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id > \$1 ORDER BY id`).
		WithArgs(2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(3, "Third").
			AddRow(4, "Fourth"))

	products, err := repo.GetPage(ctx, 2, 2)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, uint(3), products[0].ID)
	assert.Equal(t, uint(4), products[1].ID)
}

func TestProductGetWithReviews(t *testing.T) {
	ctx := context.Background()

	m := newMockDB(t)
	repo := NewGormProductRepository(m.db)

	m.mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id"}).
			AddRow(2, "Mechanical keyboard", "a3"))
	m.mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE "reviews"\."product_id" = \$1 ORDER BY reviews\.id`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rating", "comment", "product_id", "user_id"}).
			AddRow(7, 3, "Pretty mid", 2, "a3"))

	product, err := repo.GetWithReviews(ctx, 2)

	require.NoError(t, err)
	require.Len(t, product.Reviews, 1)
	assert.Equal(t, "Pretty mid", product.Reviews[0].Comment)
}

func TestProductUpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("update missing product is not found", func(t *testing.T) {
		m := newMockDB(t)
		repo := NewGormProductRepository(m.db)

		m.mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &entity.Product{ID: 404, Name: "Ghost"})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, "NOT_FOUND"))
	})

	t.Run("delete removes the row", func(t *testing.T) {
		m := newMockDB(t)
		repo := NewGormProductRepository(m.db)

		m.mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 2))
	})

	t.Run("delete missing product is not found", func(t *testing.T) {
		m := newMockDB(t)
		repo := NewGormProductRepository(m.db)

		m.mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).
			WithArgs(404).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 404)

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, "NOT_FOUND"))
	})
}
