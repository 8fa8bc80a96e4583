package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shophop/internal/usecase"
	"shophop/pkg/errors"
	"shophop/pkg/response"
	"shophop/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid product ID", err))
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	review, err := h.reviewUseCase.CreateReview(c.Request().Context(), userID, usecase.CreateReviewInput{
		ProductID: uint(productID),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, review)
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	reviewID, err := strconv.ParseUint(c.Param("reviewId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid review ID", err))
	}

	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	review, err := h.reviewUseCase.UpdateReview(c.Request().Context(), uint(reviewID), userID, usecase.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, review)
}

func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid product ID", err))
	}

	pagination := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewUseCase.ListByProduct(c.Request().Context(), uint(productID), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reviews, total, pagination.Page, pagination.PageSize)
}
