package usecase

import (
	"context"
	"strings"
	"time"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	"shophop/pkg/errors"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewUseCase(reviewRepo repository.ReviewRepository) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
	}
}

type CreateReviewInput struct {
	ProductID uint
	Rating    int
	Comment   string
}

type UpdateReviewInput struct {
	Rating  int
	Comment string
}

// CreateReview validates the review and persists it. A user can review a
// given product at most once: a second attempt fails with a conflict. The
// existence check here is advisory; the storage-level unique index on
// (product_id, user_id) is what actually closes the race between
// concurrent creates.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, userID string, input CreateReviewInput) (*entity.Review, error) {
	if strings.TrimSpace(input.Comment) == "" {
		return nil, errors.BadRequest("Review comment is required", nil)
	}
	if input.ProductID == 0 || userID == "" {
		return nil, errors.BadRequest("Product and user are required", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	existing, err := uc.reviewRepo.GetByProductAndUser(ctx, input.ProductID, userID)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Review already exists for this user and product", nil)
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	review := &entity.Review{
		Rating:        input.Rating,
		Comment:       input.Comment,
		ProductID:     input.ProductID,
		UserID:        userID,
		PublishedDate: time.Now(),
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// UpdateReview updates an existing review in place. The lookup is keyed on
// the review id, not the (product, user) pair.
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, id uint, userID string, input UpdateReviewInput) (*entity.Review, error) {
	if strings.TrimSpace(input.Comment) == "" {
		return nil, errors.BadRequest("Review comment is required", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	review, err := uc.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.UserID != userID {
		return nil, errors.Forbidden("Only the author can update a review", nil)
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (uc *ReviewUseCase) ListByProduct(ctx context.Context, productID uint, page, limit int) ([]*entity.Review, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.reviewRepo.ListByProduct(ctx, productID, limit, offset)
}
