package repository

import (
	"context"

	"shophop/internal/domain/entity"
)

type ChatRepository interface {
	// GetByParticipants looks up the chat for a normalized participant
	// pair, with its messages preloaded in insertion order.
	GetByParticipants(ctx context.Context, user1ID, user2ID string) (*entity.Chat, error)
	GetByID(ctx context.Context, id uint) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error)
	Create(ctx context.Context, chat *entity.Chat) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessagesByChat(ctx context.Context, chatID uint, limit, offset int) ([]*entity.Message, int64, error)
}
