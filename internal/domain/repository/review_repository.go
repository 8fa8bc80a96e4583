package repository

import (
	"context"

	"shophop/internal/domain/entity"
)

type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*entity.Review, error)
	GetByProductAndUser(ctx context.Context, productID uint, userID string) (*entity.Review, error)
	ListByProduct(ctx context.Context, productID uint, limit, offset int) ([]*entity.Review, int64, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
}
