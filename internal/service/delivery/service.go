package delivery

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
	"plataforma-pm/internal/service/email"
)

// Result summarizes one send event.
type Result struct {
	SendLogID   uuid.UUID `json:"send_log_id"`
	TargetCount int       `json:"target_count"`
	SentCount   int       `json:"sent_count"`
	FailedCount int       `json:"failed_count"`
}

// Service persists one Notification plus one NotificationDelivery per
// recipient and closes the send event with a single NotificationSendLog. A
// failing recipient never aborts the batch: the failure is recorded on its
// delivery row and processing continues. Both the immediate and scheduled
// paths go through here, so delivery semantics are identical for either
// trigger.
type Service interface {
	Deliver(ctx context.Context, creatorID uuid.UUID, orgID *uuid.UUID, payload domain.BroadcastPayload, recipients []uuid.UUID) (*Result, error)
}

type service struct {
	notifRepo    repository.NotificationRepository
	deliveryRepo repository.DeliveryRepository
	sendLogRepo  repository.SendLogRepository
	userRepo     repository.UserRepository
	emailSvc     email.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	deliveryRepo repository.DeliveryRepository,
	sendLogRepo repository.SendLogRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifRepo:    notifRepo,
		deliveryRepo: deliveryRepo,
		sendLogRepo:  sendLogRepo,
		userRepo:     userRepo,
		emailSvc:     emailSvc,
	}
}

func (s *service) Deliver(ctx context.Context, creatorID uuid.UUID, orgID *uuid.UUID, payload domain.BroadcastPayload, recipients []uuid.UUID) (*Result, error) {
	sendLogID := uuid.New()

	dataMap := map[string]string{
		"priority": string(payload.Priority),
	}
	if payload.Link != nil {
		dataMap["link"] = *payload.Link
	}
	data, _ := json.Marshal(dataMap)

	sentCount := 0
	failedCount := 0

	for _, userID := range recipients {
		notif := &domain.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Kind:    payload.Kind,
			Title:   payload.Title,
			Message: payload.Message,
			Data:    json.RawMessage(data),
		}

		deliveryRow := &domain.NotificationDelivery{
			ID:        uuid.New(),
			SendLogID: sendLogID,
			UserID:    userID,
		}

		if err := s.notifRepo.Create(ctx, notif); err != nil {
			failedCount++
			errMsg := err.Error()
			deliveryRow.Failed = true
			deliveryRow.ErrorMessage = &errMsg
		} else {
			sentCount++
			notifID := notif.ID
			deliveryRow.NotificationID = &notifID
			s.sendEmailAsync(notif)
		}

		if err := s.deliveryRepo.Create(ctx, deliveryRow); err != nil {
			log.Printf("failed to record delivery for user %s: %v", userID, err)
		}
	}

	sendLog := &domain.NotificationSendLog{
		ID:             sendLogID,
		CreatorID:      creatorID,
		OrganizationID: orgID,
		Title:          payload.Title,
		Message:        payload.Message,
		Kind:           payload.Kind,
		Priority:       payload.Priority,
		Link:           payload.Link,
		TargetType:     payload.TargetType,
		TargetCount:    len(recipients),
		SentCount:      sentCount,
		FailedCount:    failedCount,
	}

	if err := s.sendLogRepo.Create(ctx, sendLog); err != nil {
		return nil, err
	}

	return &Result{
		SendLogID:   sendLogID,
		TargetCount: len(recipients),
		SentCount:   sentCount,
		FailedCount: failedCount,
	}, nil
}

// sendEmailAsync fans the notification out to email best-effort. Delivery is
// persistence-only; email is an observer and its failure is invisible to the
// send event.
func (s *service) sendEmailAsync(notif *domain.Notification) {
	if s.emailSvc == nil {
		return
	}

	var link *string
	var dataMap map[string]string
	if json.Unmarshal(notif.Data, &dataMap) == nil {
		if l, ok := dataMap["link"]; ok {
			link = &l
		}
	}

	go func(notif domain.Notification, link *string) {
		ctx := context.Background()

		user, err := s.userRepo.GetByID(ctx, notif.UserID)
		if err != nil || user == nil || user.Email == "" {
			return
		}

		if err := s.emailSvc.SendNotificationEmail(ctx, user.Email, user.FullName, notif.Title, notif.Message, link); err != nil {
			log.Printf("failed to send notification email to %s: %v", user.Email, err)
			return
		}

		_ = s.notifRepo.MarkEmailSent(ctx, notif.ID)
	}(*notif, link)
}
