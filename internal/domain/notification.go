package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is one delivered message instance addressed to exactly one user.
type Notification struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	Kind        NotificationKind `json:"kind" db:"kind"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	Data        json.RawMessage  `json:"data,omitempty" db:"data"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	IsEmailSent bool             `json:"is_email_sent" db:"is_email_sent"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type NotificationKind string

const (
	KindActivity NotificationKind = "activity"
	KindSystem   NotificationKind = "system"
)

func (k NotificationKind) IsValid() bool {
	return k == KindActivity || k == KindSystem
}
