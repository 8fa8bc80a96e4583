package repository

import (
	"context"

	"shophop/internal/domain/entity"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	GetWithReviews(ctx context.Context, id uint) (*entity.Product, error)
	ListBySeller(ctx context.Context, userID string) ([]*entity.Product, error)
	// GetPage returns up to amount products with IDs greater than lastID,
	// in ascending ID order (keyset pagination).
	GetPage(ctx context.Context, lastID uint, amount int) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
}
