package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository/mocks"
	"shophop/pkg/errors"
)

func TestCreateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("creates review for first-time reviewer", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByProductAndUser", ctx, uint(2), "a3").
			Return(nil, errors.NotFound("Review", nil))
		reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).
			Return(nil)

		review, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 2,
			Rating:    3,
			Comment:   "Pretty mid",
		})

		require.NoError(t, err)
		require.NotNil(t, review)
		assert.Equal(t, uint(2), review.ProductID)
		assert.Equal(t, "a3", review.UserID)
		assert.Equal(t, 3, review.Rating)
		assert.Equal(t, "Pretty mid", review.Comment)
		assert.False(t, review.PublishedDate.IsZero())
		reviewRepo.AssertExpectations(t)
	})

	t.Run("rejects empty comment before touching the repository", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		review, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 2,
			Rating:    3,
			Comment:   "",
		})

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
		reviewRepo.AssertNotCalled(t, "GetByProductAndUser", mock.Anything, mock.Anything, mock.Anything)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects whitespace-only comment", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		_, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 2,
			Rating:    3,
			Comment:   "   ",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects rating outside 1..5", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		for _, rating := range []int{0, -1, 6} {
			_, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
				ProductID: 2,
				Rating:    rating,
				Comment:   "Pretty mid",
			})
			require.Error(t, err)
			assert.True(t, errors.Is(err, "BAD_REQUEST"))
		}
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing product or user", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		_, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 0,
			Rating:    3,
			Comment:   "Pretty mid",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		_, err = uc.CreateReview(ctx, "", CreateReviewInput{
			ProductID: 2,
			Rating:    3,
			Comment:   "Pretty mid",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("second review for same product and user conflicts", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByProductAndUser", ctx, uint(2), "a3").
			Return(&entity.Review{ID: 7, ProductID: 2, UserID: "a3", Rating: 3, Comment: "Pretty mid"}, nil)

		review, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 2,
			Rating:    5,
			Comment:   "Changed my mind",
		})

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, "CONFLICT"))
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("same user may review different products", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByProductAndUser", ctx, uint(9), "a3").
			Return(nil, errors.NotFound("Review", nil))
		reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).
			Return(nil)

		review, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 9,
			Rating:    5,
			Comment:   "Great",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(9), review.ProductID)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("storage conflict surfaces when the existence check races", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByProductAndUser", ctx, uint(2), "a3").
			Return(nil, errors.NotFound("Review", nil))
		reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).
			Return(errors.Conflict("Review already exists for this user and product", nil))

		_, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 2,
			Rating:    3,
			Comment:   "Pretty mid",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("propagates unexpected lookup errors", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByProductAndUser", ctx, uint(2), "a3").
			Return(nil, errors.Internal("query failed", assert.AnError))

		_, err := uc.CreateReview(ctx, "a3", CreateReviewInput{
			ProductID: 2,
			Rating:    3,
			Comment:   "Pretty mid",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateReview(t *testing.T) {
	ctx := context.Background()

	t.Run("updates rating and comment in place", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByID", ctx, uint(7)).
			Return(&entity.Review{ID: 7, ProductID: 2, UserID: "a3", Rating: 3, Comment: "Pretty mid"}, nil)
		reviewRepo.On("Update", ctx, mock.AnythingOfType("*entity.Review")).
			Return(nil)

		review, err := uc.UpdateReview(ctx, 7, "a3", UpdateReviewInput{
			Rating:  5,
			Comment: "Grew on me",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(7), review.ID)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, "Grew on me", review.Comment)
		assert.Equal(t, uint(2), review.ProductID)
		assert.Equal(t, "a3", review.UserID)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("missing review is not found", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByID", ctx, uint(404)).
			Return(nil, errors.NotFound("Review", nil))

		review, err := uc.UpdateReview(ctx, 404, "a3", UpdateReviewInput{
			Rating:  4,
			Comment: "Solid",
		})

		require.Error(t, err)
		assert.Nil(t, review)
		assert.True(t, errors.Is(err, "NOT_FOUND"))
		reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("only the author may update", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		reviewRepo.On("GetByID", ctx, uint(7)).
			Return(&entity.Review{ID: 7, ProductID: 2, UserID: "a3"}, nil)

		_, err := uc.UpdateReview(ctx, 7, "b4", UpdateReviewInput{
			Rating:  1,
			Comment: "Terrible",
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, "FORBIDDEN"))
		reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid input before lookup", func(t *testing.T) {
		reviewRepo := new(mocks.MockReviewRepository)
		uc := NewReviewUseCase(reviewRepo)

		_, err := uc.UpdateReview(ctx, 7, "a3", UpdateReviewInput{Rating: 3, Comment: ""})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		_, err = uc.UpdateReview(ctx, 7, "a3", UpdateReviewInput{Rating: 0, Comment: "x"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, "BAD_REQUEST"))

		reviewRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestListReviewsByProduct(t *testing.T) {
	ctx := context.Background()

	reviewRepo := new(mocks.MockReviewRepository)
	uc := NewReviewUseCase(reviewRepo)

	stored := []*entity.Review{
		{ID: 1, ProductID: 2, UserID: "a3", Rating: 3, Comment: "Pretty mid"},
		{ID: 2, ProductID: 2, UserID: "b4", Rating: 5, Comment: "Love it"},
	}
	reviewRepo.On("ListByProduct", ctx, uint(2), 20, 0).
		Return(stored, int64(2), nil)

	reviews, total, err := uc.ListByProduct(ctx, 2, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)
	reviewRepo.AssertExpectations(t)
}
