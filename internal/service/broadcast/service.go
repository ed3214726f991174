package broadcast

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
	"plataforma-pm/internal/service/audit"
	"plataforma-pm/internal/service/authz"
	"plataforma-pm/internal/service/delivery"
	"plataforma-pm/internal/service/targeting"
)

var (
	ErrInvalidInput = errors.New("invalid broadcast input")
	ErrNotFound     = errors.New("scheduled notification not found")
	ErrNotCreator   = errors.New("only the creator may modify a scheduled notification")
	ErrNotPending   = errors.New("scheduled notification is no longer pending")
)

// DeliveryStats reports the outcome of one send event, including how many
// recipients have read it so far.
type DeliveryStats struct {
	SendLogID   uuid.UUID `json:"send_log_id"`
	TargetCount int       `json:"target_count"`
	SentCount   int       `json:"sent_count"`
	FailedCount int       `json:"failed_count"`
	ReadCount   int64     `json:"read_count"`
}

// Service is the caller-facing surface of the broadcast engine: immediate
// sends, scheduling, creator-scoped listing and edits, send history and
// per-send delivery stats. Authorization runs before any row is written, so a
// denied request leaves no trace.
type Service interface {
	Send(ctx context.Context, caller *domain.User, orgID *uuid.UUID, input domain.SendBroadcastInput) (*delivery.Result, error)
	Schedule(ctx context.Context, caller *domain.User, orgID *uuid.UUID, input domain.ScheduleBroadcastInput) (*domain.ScheduledNotification, error)
	ListScheduled(ctx context.Context, callerID uuid.UUID, status domain.ScheduledStatus, params domain.ListParams) ([]domain.ScheduledNotification, error)
	UpdateScheduled(ctx context.Context, id, callerID uuid.UUID, input domain.UpdateScheduledInput) error
	CancelScheduled(ctx context.Context, id, callerID uuid.UUID) error
	SendHistory(ctx context.Context, callerID uuid.UUID, params domain.ListParams) ([]domain.NotificationSendLog, error)
	DeliveryStats(ctx context.Context, sendLogID uuid.UUID) (*DeliveryStats, error)
}

type service struct {
	scheduledRepo repository.ScheduledNotificationRepository
	sendLogRepo   repository.SendLogRepository
	deliveryRepo  repository.DeliveryRepository
	authzSvc      authz.Service
	targetingSvc  targeting.Service
	deliverySvc   delivery.Service
	auditSvc      audit.Service
}

func NewService(
	scheduledRepo repository.ScheduledNotificationRepository,
	sendLogRepo repository.SendLogRepository,
	deliveryRepo repository.DeliveryRepository,
	authzSvc authz.Service,
	targetingSvc targeting.Service,
	deliverySvc delivery.Service,
	auditSvc audit.Service,
) Service {
	return &service{
		scheduledRepo: scheduledRepo,
		sendLogRepo:   sendLogRepo,
		deliveryRepo:  deliveryRepo,
		authzSvc:      authzSvc,
		targetingSvc:  targetingSvc,
		deliverySvc:   deliverySvc,
		auditSvc:      auditSvc,
	}
}

func validateInput(input *domain.SendBroadcastInput) error {
	if !input.TargetType.IsValid() {
		return fmt.Errorf("%w: unknown target type %q", ErrInvalidInput, input.TargetType)
	}
	if input.Title == "" || len(input.Title) > 200 {
		return fmt.Errorf("%w: title must be 1-200 characters", ErrInvalidInput)
	}
	if input.Message == "" || len(input.Message) > 1000 {
		return fmt.Errorf("%w: message must be 1-1000 characters", ErrInvalidInput)
	}
	if !input.Kind.IsValid() {
		return fmt.Errorf("%w: unknown notification kind %q", ErrInvalidInput, input.Kind)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityNormal
	}
	if !input.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}
	if input.Link != nil {
		if u, err := url.Parse(*input.Link); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: link must be an absolute URL", ErrInvalidInput)
		}
	}
	return nil
}

func (s *service) Send(ctx context.Context, caller *domain.User, orgID *uuid.UUID, input domain.SendBroadcastInput) (*delivery.Result, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	if err := s.authzSvc.Authorize(ctx, caller, orgID, input.TargetType, input.TargetIDs); err != nil {
		return nil, err
	}

	recipients, err := s.targetingSvc.Resolve(ctx, input.TargetType, input.TargetIDs, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target: %w", err)
	}

	result, err := s.deliverySvc.Deliver(ctx, caller.ID, orgID, input.Payload(), recipients)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(domain.CreateAuditLogInput{
		UserID:     caller.ID,
		Action:     "SEND",
		EntityType: "NOTIFICATION_BROADCAST",
		EntityID:   result.SendLogID,
		Detail: map[string]interface{}{
			"target_type":  input.TargetType,
			"target_count": result.TargetCount,
			"sent_count":   result.SentCount,
		},
	})

	return result, nil
}

func (s *service) Schedule(ctx context.Context, caller *domain.User, orgID *uuid.UUID, input domain.ScheduleBroadcastInput) (*domain.ScheduledNotification, error) {
	if err := validateInput(&input.SendBroadcastInput); err != nil {
		return nil, err
	}
	if input.ScheduledFor.IsZero() {
		return nil, fmt.Errorf("%w: scheduled_for is required", ErrInvalidInput)
	}
	if err := s.authzSvc.Authorize(ctx, caller, orgID, input.TargetType, input.TargetIDs); err != nil {
		return nil, err
	}

	sn := &domain.ScheduledNotification{
		ID:             uuid.New(),
		CreatorID:      caller.ID,
		OrganizationID: orgID,
		TargetType:     input.TargetType,
		TargetIDs:      pq.StringArray(input.TargetIDs),
		Title:          input.Title,
		Message:        input.Message,
		Kind:           input.Kind,
		Priority:       input.Priority,
		Link:           input.Link,
		ScheduledFor:   input.ScheduledFor,
		Status:         domain.StatusPending,
	}

	if err := s.scheduledRepo.Create(ctx, sn); err != nil {
		return nil, err
	}

	s.auditSvc.Record(domain.CreateAuditLogInput{
		UserID:     caller.ID,
		Action:     "SCHEDULE",
		EntityType: "SCHEDULED_NOTIFICATION",
		EntityID:   sn.ID,
		Detail: map[string]interface{}{
			"target_type":   input.TargetType,
			"scheduled_for": input.ScheduledFor,
		},
	})

	return sn, nil
}

func (s *service) ListScheduled(ctx context.Context, callerID uuid.UUID, status domain.ScheduledStatus, params domain.ListParams) ([]domain.ScheduledNotification, error) {
	if status == "" {
		status = domain.StatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.scheduledRepo.ListByCreator(ctx, callerID, status, params)
}

// UpdateScheduled edits a pending row. The conditional UPDATE carries the
// creator and pending guards; a miss is disambiguated afterwards so the caller
// learns why.
func (s *service) UpdateScheduled(ctx context.Context, id, callerID uuid.UUID, input domain.UpdateScheduledInput) error {
	if input.Title != nil && (*input.Title == "" || len(*input.Title) > 200) {
		return fmt.Errorf("%w: title must be 1-200 characters", ErrInvalidInput)
	}
	if input.Message != nil && (*input.Message == "" || len(*input.Message) > 1000) {
		return fmt.Errorf("%w: message must be 1-1000 characters", ErrInvalidInput)
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *input.Priority)
	}

	updated, err := s.scheduledRepo.Update(ctx, id, callerID, input)
	if err != nil {
		return err
	}
	if updated {
		return nil
	}

	return s.explainMiss(ctx, id, callerID)
}

func (s *service) CancelScheduled(ctx context.Context, id, callerID uuid.UUID) error {
	cancelled, err := s.scheduledRepo.Cancel(ctx, id, callerID)
	if err != nil {
		return err
	}
	if cancelled {
		s.auditSvc.Record(domain.CreateAuditLogInput{
			UserID:     callerID,
			Action:     "CANCEL",
			EntityType: "SCHEDULED_NOTIFICATION",
			EntityID:   id,
		})
		return nil
	}

	return s.explainMiss(ctx, id, callerID)
}

func (s *service) explainMiss(ctx context.Context, id, callerID uuid.UUID) error {
	sn, err := s.scheduledRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sn == nil {
		return ErrNotFound
	}
	if sn.CreatorID != callerID {
		return ErrNotCreator
	}
	return ErrNotPending
}

func (s *service) SendHistory(ctx context.Context, callerID uuid.UUID, params domain.ListParams) ([]domain.NotificationSendLog, error) {
	return s.sendLogRepo.ListByCreator(ctx, callerID, params)
}

func (s *service) DeliveryStats(ctx context.Context, sendLogID uuid.UUID) (*DeliveryStats, error) {
	sendLog, err := s.sendLogRepo.GetByID(ctx, sendLogID)
	if err != nil {
		return nil, err
	}
	if sendLog == nil {
		return nil, ErrNotFound
	}

	readCount, err := s.deliveryRepo.CountRead(ctx, sendLogID)
	if err != nil {
		return nil, err
	}

	return &DeliveryStats{
		SendLogID:   sendLog.ID,
		TargetCount: sendLog.TargetCount,
		SentCount:   sendLog.SentCount,
		FailedCount: sendLog.FailedCount,
		ReadCount:   readCount,
	}, nil
}
