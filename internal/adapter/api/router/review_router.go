package router

import (
	"github.com/labstack/echo/v4"

	"shophop/internal/adapter/api/handler"
	"shophop/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	// Public routes
	e.GET("/v1/products/:productId/reviews", reviewHandler.GetProductReviews)

	// Protected routes (require authentication)
	authenticated := e.Group("")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("/v1/products/:productId/reviews", reviewHandler.CreateReview)
	authenticated.PUT("/v1/reviews/:reviewId", reviewHandler.UpdateReview)
}
