package entity

import "time"

// Message is immutable once created and owned exclusively by its Chat.
type Message struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ChatID       uint      `json:"chat_id" gorm:"index;not null"`
	SenderUserID string    `json:"sender_user_id" gorm:"type:uuid;not null"`
	Text         string    `json:"text" gorm:"not null"`
	SendDate     time.Time `json:"send_date"`
}
