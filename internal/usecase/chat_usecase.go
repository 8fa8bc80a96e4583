package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"shophop/internal/domain/entity"
	"shophop/internal/domain/repository"
	"shophop/pkg/errors"
	"shophop/pkg/logger"
)

// MessageBroadcaster pushes payloads to connected participants. Delivery
// is best effort; implementations must never block the caller.
type MessageBroadcaster interface {
	BroadcastToChatExcept(chatID uint, payload []byte, excludeUserID string)
	SendToUser(userID string, payload []byte)
}

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	broadcaster MessageBroadcaster
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	broadcaster MessageBroadcaster,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
	}
}

type SendMessageInput struct {
	ChatID uint
	Text   string
}

// normalizePair orders two user ids so that every unordered pair maps to
// exactly one stored (user1, user2) combination.
func normalizePair(user1ID, user2ID string) (string, string) {
	if user1ID > user2ID {
		return user2ID, user1ID
	}
	return user1ID, user2ID
}

// GetOrCreateChat returns the conversation between two users, creating it
// lazily on first contact. The pair is order-insensitive: (A,B) and (B,A)
// resolve to the same chat.
func (uc *ChatUseCase) GetOrCreateChat(ctx context.Context, user1ID, user2ID string) (*entity.Chat, error) {
	if user1ID == "" || user2ID == "" {
		return nil, errors.BadRequest("Both participants are required", nil)
	}
	if user1ID == user2ID {
		return nil, errors.BadRequest("You cannot create a chat with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, user1ID); err != nil {
		return nil, errors.NotFound("Participant", err)
	}
	if _, err := uc.userRepo.GetByID(ctx, user2ID); err != nil {
		return nil, errors.NotFound("Participant", err)
	}

	a, b := normalizePair(user1ID, user2ID)

	chat, err := uc.chatRepo.GetByParticipants(ctx, a, b)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	chat = &entity.Chat{
		User1ID:  a,
		User2ID:  b,
		Messages: []entity.Message{},
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		// A concurrent first contact for the same pair may have won the
		// unique-index race; the existing chat is the right answer.
		if errors.Is(err, "CONFLICT") {
			return uc.chatRepo.GetByParticipants(ctx, a, b)
		}
		return nil, err
	}

	return chat, nil
}

// GetChat returns a conversation with its messages, restricted to its
// participants.
func (uc *ChatUseCase) GetChat(ctx context.Context, chatID uint, userID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(userID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	return chat, nil
}

func (uc *ChatUseCase) ListChats(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	return uc.chatRepo.ListByUserID(ctx, userID, limit, offset)
}

// ListMessages pages through a conversation's history, oldest first,
// restricted to its participants.
func (uc *ChatUseCase) ListMessages(ctx context.Context, chatID uint, userID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}

	if !chat.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("User is not a participant in this chat", nil)
	}

	return uc.chatRepo.GetMessagesByChat(ctx, chatID, limit, offset)
}

// SendMessage appends a message to the conversation and fans it out to the
// other connected participant. Persistence always comes first; the
// broadcast is best effort and never fails the call. A crash between the
// two leaves the message durable but undelivered in real time.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderUserID string, input SendMessageInput) (*entity.Message, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	chat, err := uc.chatRepo.GetByID(ctx, input.ChatID)
	if err != nil {
		return nil, err
	}

	if !chat.HasParticipant(senderUserID) {
		return nil, errors.Forbidden("User is not a participant in this chat", nil)
	}

	message := &entity.Message{
		ChatID:       input.ChatID,
		SenderUserID: senderUserID,
		Text:         input.Text,
		SendDate:     time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	uc.notifyNewMessage(chat, message)

	return message, nil
}

func (uc *ChatUseCase) notifyNewMessage(chat *entity.Chat, message *entity.Message) {
	notification := map[string]interface{}{
		"type":    "new_message",
		"chat_id": message.ChatID,
		"message": message,
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		logger.Error("SendMessage: failed to marshal notification for chat %d: %v", message.ChatID, err)
		return
	}

	uc.broadcaster.BroadcastToChatExcept(message.ChatID, payload, message.SenderUserID)

	// Also ping the other participant directly so chat lists refresh even
	// when the room is not open.
	other := chat.User1ID
	if other == message.SenderUserID {
		other = chat.User2ID
	}
	uc.broadcaster.SendToUser(other, payload)
}
