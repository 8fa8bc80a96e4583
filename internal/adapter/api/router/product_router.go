package router

import (
	"github.com/labstack/echo/v4"

	"shophop/internal/adapter/api/handler"
	"shophop/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	// Public routes
	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:productId", productHandler.GetProduct)

	// Protected routes (require authentication)
	authenticated := e.Group("/v1/products")
	authenticated.Use(authMiddleware.Authenticate)

	authenticated.POST("", productHandler.CreateProduct)
	authenticated.PUT("/:productId", productHandler.UpdateProduct)
	authenticated.DELETE("/:productId", productHandler.DeleteProduct)

	my := e.Group("/v1/my/products")
	my.Use(authMiddleware.Authenticate)
	my.GET("", productHandler.ListMyProducts)
}
