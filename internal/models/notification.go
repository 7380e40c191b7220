package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeReport  = "report"
	NotificationTypeMessage = "message"
)

// Notification is the generic pull-based notification row. Report fan-out
// writes these with a nil ReferenceID because the flagged item is not itself
// a single navigable target.
type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_user_id"`
	ActorID     uuid.UUID  `gorm:"type:uuid;not null" json:"actor_user_id"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"reference_id,omitempty"`
	Message     string     `gorm:"type:text" json:"message"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
}
