package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	"shophop/pkg/errors"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

type CreateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

type UpdateProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Product name is required", nil)
	}
	if input.Price.IsNegative() {
		return nil, errors.BadRequest("Product price cannot be negative", nil)
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		UserID:      sellerID,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id uint) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) GetProductWithReviews(ctx context.Context, id uint) (*entity.Product, error) {
	return uc.productRepo.GetWithReviews(ctx, id)
}

func (uc *ProductUseCase) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	return uc.productRepo.ListBySeller(ctx, sellerID)
}

// GetPage returns a keyset page: up to amount products after lastID,
// together with the total product count.
func (uc *ProductUseCase) GetPage(ctx context.Context, lastID uint, amount int) ([]*entity.Product, int64, error) {
	if amount <= 0 || amount > 100 {
		amount = 20
	}

	products, err := uc.productRepo.GetPage(ctx, lastID, amount)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.productRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id uint, sellerID string, input UpdateProductInput) (*entity.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.BadRequest("Product name is required", nil)
	}
	if input.Price.IsNegative() {
		return nil, errors.BadRequest("Product price cannot be negative", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.UserID != sellerID {
		return nil, errors.Forbidden("Only the seller can update a product", nil)
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Description = input.Description

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id uint, sellerID string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.UserID != sellerID {
		return errors.Forbidden("Only the seller can delete a product", nil)
	}

	return uc.productRepo.Delete(ctx, id)
}
