package router

import (
	"github.com/labstack/echo/v4"

	"shophop/internal/adapter/api/handler"
	"shophop/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.GetOrCreateChat)
	chats.GET("/list", chatHandler.ListChats)
	chats.GET("/:chatId", chatHandler.GetChat)
	chats.GET("/:chatId/messages", chatHandler.GetChatMessages)
	chats.POST("/:chatId/group/:connectionId", chatHandler.AddToGroup)
	chats.POST("/messages", chatHandler.SendMessage)
}
