package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"shophop/internal/infrastructure/database"
)

func SetupHealthRouter(e *echo.Echo, db *database.Database) {
	e.GET("/health", func(c echo.Context) error {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, map[string]interface{}{
			"status": status,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}
