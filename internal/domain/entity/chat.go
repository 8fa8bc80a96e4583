package entity

import "time"

// Chat is a two-party conversation. The participant pair is stored
// normalized (User1ID < User2ID) so that one row exists per unordered
// pair, backed by the composite unique index.
type Chat struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	User1ID string `json:"user1_id" gorm:"type:uuid;uniqueIndex:idx_chats_participants;not null"`
	User2ID string `json:"user2_id" gorm:"type:uuid;uniqueIndex:idx_chats_participants;not null"`

	// Messages in insertion order.
	Messages []Message `json:"messages" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Chat) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}
