package entity

import "time"

// Review is a buyer's rating of a product. A user can review a given
// product at most once; the composite unique index is the authoritative
// guard for that invariant.
type Review struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Rating        int       `json:"rating" gorm:"not null"` // 1-5
	Comment       string    `json:"comment" gorm:"not null"`
	ProductID     uint      `json:"product_id" gorm:"uniqueIndex:idx_reviews_product_user;not null"`
	UserID        string    `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_reviews_product_user;not null"`
	PublishedDate time.Time `json:"published_date"`
}
