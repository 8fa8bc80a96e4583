package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"shophop/internal/infrastructure/websocket"
	"shophop/internal/usecase"
	"shophop/pkg/errors"
	"shophop/pkg/response"
	"shophop/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
	wsManager   *websocket.Manager
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, wsManager *websocket.Manager) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		wsManager:   wsManager,
	}
}

type sendMessageRequest struct {
	ChatID uint   `json:"chat_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// GetOrCreateChat resolves the conversation between two users, creating
// it lazily on first contact.
func (h *ChatHandler) GetOrCreateChat(c echo.Context) error {
	user1ID := c.QueryParam("user1Id")
	user2ID := c.QueryParam("user2Id")

	chat, err := h.chatUseCase.GetOrCreateChat(c.Request().Context(), user1ID, user2ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"id":              chat.ID,
		"current_user_id": c.Get("uid").(string),
		"messages":        chat.Messages,
	})
}

func (h *ChatHandler) GetChat(c echo.Context) error {
	chatID, err := strconv.ParseUint(c.Param("chatId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid chat ID", err))
	}

	userID := c.Get("uid").(string)

	chat, err := h.chatUseCase.GetChat(c.Request().Context(), uint(chatID), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	chats, total, err := h.chatUseCase.ListChats(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, chats, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	chatID, err := strconv.ParseUint(c.Param("chatId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid chat ID", err))
	}

	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uint(chatID), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

// AddToGroup subscribes an active WebSocket connection to a chat's
// broadcast group. Only participants may join.
func (h *ChatHandler) AddToGroup(c echo.Context) error {
	chatID, err := strconv.ParseUint(c.Param("chatId"), 10, 32)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid chat ID", err))
	}
	connectionID := c.Param("connectionId")

	userID := c.Get("uid").(string)

	if _, err := h.chatUseCase.GetChat(c.Request().Context(), uint(chatID), userID); err != nil {
		return response.Error(c, err)
	}

	h.wsManager.AddToChat(uint(chatID), connectionID)

	return response.Success(c, nil)
}

// SendMessage persists a message and then fans it out to connected
// participants. Broadcast happens after the write succeeds and never
// affects the response.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ChatID: req.ChatID,
		Text:   req.Text,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
