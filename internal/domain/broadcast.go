package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TargetType describes the audience class of a broadcast before resolution.
type TargetType string

const (
	TargetUser         TargetType = "user"
	TargetOrganization TargetType = "organization"
	TargetRole         TargetType = "role"
	TargetMultiOrg     TargetType = "multi-org"
	TargetAll          TargetType = "all"
)

func (t TargetType) IsValid() bool {
	switch t {
	case TargetUser, TargetOrganization, TargetRole, TargetMultiOrg, TargetAll:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type ScheduledStatus string

const (
	StatusPending   ScheduledStatus = "pending"
	StatusSent      ScheduledStatus = "sent"
	StatusCancelled ScheduledStatus = "cancelled"
	StatusFailed    ScheduledStatus = "failed"

	// StatusProcessing is the transient claim state between pending and a
	// terminal status. It never appears in listing responses.
	StatusProcessing ScheduledStatus = "processing"
)

func (s ScheduledStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusCancelled, StatusFailed:
		return true
	default:
		return false
	}
}

// ScheduledNotification is a request to deliver a broadcast at a future time.
// The audience is resolved when the row fires, not when it is created, so the
// recipient set reflects membership at send time.
type ScheduledNotification struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	CreatorID      uuid.UUID        `json:"creator_id" db:"creator_id"`
	OrganizationID *uuid.UUID       `json:"organization_id,omitempty" db:"organization_id"`
	TargetType     TargetType       `json:"target_type" db:"target_type"`
	TargetIDs      pq.StringArray   `json:"target_ids" db:"target_ids"`
	Title          string           `json:"title" db:"title"`
	Message        string           `json:"message" db:"message"`
	Kind           NotificationKind `json:"kind" db:"kind"`
	Priority       Priority         `json:"priority" db:"priority"`
	Link           *string          `json:"link,omitempty" db:"link"`
	ScheduledFor   time.Time        `json:"scheduled_for" db:"scheduled_for"`
	Status         ScheduledStatus  `json:"status" db:"status"`
	SentAt         *time.Time       `json:"sent_at,omitempty" db:"sent_at"`
	FailureReason  *string          `json:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

// NotificationDelivery is the per-recipient outcome of one send event. A row
// exists even when the Notification insert failed, so failures stay auditable.
type NotificationDelivery struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	SendLogID      uuid.UUID  `json:"send_log_id" db:"send_log_id"`
	NotificationID *uuid.UUID `json:"notification_id,omitempty" db:"notification_id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	DeliveredAt    time.Time  `json:"delivered_at" db:"delivered_at"`
	ReadAt         *time.Time `json:"read_at,omitempty" db:"read_at"`
	Failed         bool       `json:"failed" db:"failed"`
	ErrorMessage   *string    `json:"error_message,omitempty" db:"error_message"`
}

// NotificationSendLog is the immutable audit record of one send event.
type NotificationSendLog struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	CreatorID      uuid.UUID        `json:"creator_id" db:"creator_id"`
	OrganizationID *uuid.UUID       `json:"organization_id,omitempty" db:"organization_id"`
	Title          string           `json:"title" db:"title"`
	Message        string           `json:"message" db:"message"`
	Kind           NotificationKind `json:"kind" db:"kind"`
	Priority       Priority         `json:"priority" db:"priority"`
	Link           *string          `json:"link,omitempty" db:"link"`
	TargetType     TargetType       `json:"target_type" db:"target_type"`
	TargetCount    int              `json:"target_count" db:"target_count"`
	SentCount      int              `json:"sent_count" db:"sent_count"`
	FailedCount    int              `json:"failed_count" db:"failed_count"`
	SentAt         time.Time        `json:"sent_at" db:"sent_at"`
}

// BroadcastPayload is the notification content shared by the immediate and
// scheduled paths.
type BroadcastPayload struct {
	TargetType TargetType       `json:"target_type"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Kind       NotificationKind `json:"kind"`
	Priority   Priority         `json:"priority"`
	Link       *string          `json:"link,omitempty"`
}

type SendBroadcastInput struct {
	TargetType TargetType       `json:"target_type"`
	TargetIDs  []string         `json:"target_ids"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Kind       NotificationKind `json:"kind"`
	Priority   Priority         `json:"priority"`
	Link       *string          `json:"link,omitempty"`
}

type ScheduleBroadcastInput struct {
	SendBroadcastInput
	ScheduledFor time.Time `json:"scheduled_for"`
}

// UpdateScheduledInput carries the creator-editable fields of a pending row.
type UpdateScheduledInput struct {
	Title        *string    `json:"title,omitempty"`
	Message      *string    `json:"message,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	Link         *string    `json:"link,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

func (i SendBroadcastInput) Payload() BroadcastPayload {
	priority := i.Priority
	if priority == "" {
		priority = PriorityNormal
	}
	return BroadcastPayload{
		TargetType: i.TargetType,
		Title:      i.Title,
		Message:    i.Message,
		Kind:       i.Kind,
		Priority:   priority,
		Link:       i.Link,
	}
}
