package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	apperrors "shophop/pkg/errors"
)

type gormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) repository.ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product", err)
		}
		return nil, apperrors.Internal("Failed to get product", err)
	}
	return &product, nil
}

func (r *gormProductRepository) GetWithReviews(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	if err := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.id") }).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product", err)
		}
		return nil, apperrors.Internal("Failed to get product", err)
	}
	return &product, nil
}

func (r *gormProductRepository) ListBySeller(ctx context.Context, userID string) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, apperrors.Internal("Failed to list products", err)
	}
	return products, nil
}

func (r *gormProductRepository) GetPage(ctx context.Context, lastID uint, amount int) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := r.db.WithContext(ctx).
		Where("id > ?", lastID).
		Order("id").
		Limit(amount).
		Find(&products).Error; err != nil {
		return nil, apperrors.Internal("Failed to page products", err)
	}
	return products, nil
}

func (r *gormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		return 0, apperrors.Internal("Failed to count products", err)
	}
	return count, nil
}

func (r *gormProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperrors.Internal("Failed to create product", err)
	}
	return nil
}

func (r *gormProductRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"description": product.Description,
		})
	if result.Error != nil {
		return apperrors.Internal("Failed to update product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Product", nil)
	}
	return nil
}

func (r *gormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal("Failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("Product", nil)
	}
	return nil
}
