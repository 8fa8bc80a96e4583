package router

import (
	"github.com/labstack/echo/v4"

	"shophop/internal/adapter/api/middleware"
	"shophop/internal/infrastructure/database"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, db *database.Database) {
	SetupAuthRouter(e)
	SetupProductRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupHealthRouter(e, db)
}
