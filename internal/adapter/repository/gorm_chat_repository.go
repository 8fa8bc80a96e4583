package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	apperrors "shophop/pkg/errors"
)

type gormChatRepository struct {
	db *gorm.DB
}

func NewGormChatRepository(db *gorm.DB) repository.ChatRepository {
	return &gormChatRepository{db: db}
}

// messageOrder preloads messages in insertion order so that the latest
// message is always last.
func messageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("messages.id")
}

func (r *gormChatRepository) GetByParticipants(ctx context.Context, user1ID, user2ID string) (*entity.Chat, error) {
	var chat entity.Chat
	if err := r.db.WithContext(ctx).
		Preload("Messages", messageOrder).
		Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).
		First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Chat", err)
		}
		return nil, apperrors.Internal("Failed to get chat", err)
	}
	return &chat, nil
}

func (r *gormChatRepository) GetByID(ctx context.Context, id uint) (*entity.Chat, error) {
	var chat entity.Chat
	if err := r.db.WithContext(ctx).
		Preload("Messages", messageOrder).
		First(&chat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Chat", err)
		}
		return nil, apperrors.Internal("Failed to get chat", err)
	}
	return &chat, nil
}

func (r *gormChatRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count chats", err)
	}

	var chats []*entity.Chat
	if err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&chats).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to list chats", err)
	}

	return chats, total, nil
}

func (r *gormChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		// Two concurrent first-contact requests for the same pair race on
		// the unique index; the loser sees a conflict and can re-read.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("Chat already exists for these participants", err)
		}
		return apperrors.Internal("Failed to create chat", err)
	}
	return nil
}

func (r *gormChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.SendDate.IsZero() {
		message.SendDate = time.Now()
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return apperrors.Internal("Failed to create message", err)
	}

	// Bump the conversation so chat lists sort by recent activity.
	if err := r.db.WithContext(ctx).
		Model(&entity.Chat{}).
		Where("id = ?", message.ChatID).
		Update("updated_at", message.SendDate).Error; err != nil {
		return apperrors.Internal("Failed to touch chat", err)
	}

	return nil
}

func (r *gormChatRepository) GetMessagesByChat(ctx context.Context, chatID uint, limit, offset int) ([]*entity.Message, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("chat_id = ?", chatID).
		Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count messages", err)
	}

	var messages []*entity.Message
	if err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to list messages", err)
	}

	return messages, total, nil
}
