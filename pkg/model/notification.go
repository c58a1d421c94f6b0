package model

import "time"

const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
)

// Notification records that a user should hear about a post. Delivery happens elsewhere.
type Notification struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	PostID           uint       `gorm:"index;not null" json:"postId"`
	UserID           uint       `gorm:"index;not null" json:"userId"`
	NotificationType string     `gorm:"not null" json:"notificationType"`
	MessageContent   *string    `gorm:"type:text" json:"messageContent"`
	SentAt           *time.Time `json:"sentAt"`
	Status           *string    `json:"status"`
}
