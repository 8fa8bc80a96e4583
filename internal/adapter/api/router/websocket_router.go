package router

import (
	"github.com/labstack/echo/v4"

	"shophop/internal/adapter/api/handler"
	"shophop/internal/adapter/api/middleware"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	ws := e.Group("/ws")
	ws.Use(authMiddleware.Authenticate)
	ws.GET("", wsHandler.HandleWebSocket)
}
