package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	apperrors "shophop/pkg/errors"
)

type gormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &gormReviewRepository{db: db}
}

func (r *gormReviewRepository) GetByID(ctx context.Context, id uint) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Review", err)
		}
		return nil, apperrors.Internal("Failed to get review", err)
	}
	return &review, nil
}

func (r *gormReviewRepository) GetByProductAndUser(ctx context.Context, productID uint, userID string) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Review", err)
		}
		return nil, apperrors.Internal("Failed to get review", err)
	}
	return &review, nil
}

func (r *gormReviewRepository) ListByProduct(ctx context.Context, productID uint, limit, offset int) ([]*entity.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count reviews", err)
	}

	var reviews []*entity.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to list reviews", err)
	}

	return reviews, total, nil
}

func (r *gormReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.PublishedDate.IsZero() {
		review.PublishedDate = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		// The unique index on (product_id, user_id) is the authoritative
		// guard against duplicate reviews.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("Review already exists for this user and product", err)
		}
		return apperrors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *gormReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":  review.Rating,
			"comment": review.Comment,
		})
	if result.Error != nil {
		return apperrors.Internal("Failed to update review", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Review", nil)
	}
	return nil
}
