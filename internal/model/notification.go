package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes inbox entries.
type NotificationType string

const (
	NotificationJoinRequest  NotificationType = "JOIN_REQUEST"
	NotificationStatusUpdate NotificationType = "STATUS_UPDATE"
)

// Notification is one inbox entry for a user.
type Notification struct {
	ID          uuid.UUID        `json:"id"`
	RecipientID uuid.UUID        `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Link        string           `json:"link,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
