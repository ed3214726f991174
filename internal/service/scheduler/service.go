package scheduler

import (
	"context"
	"log"
	"time"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
	"plataforma-pm/internal/service/delivery"
	"plataforma-pm/internal/service/targeting"
)

// Result summarizes one processing cycle.
type Result struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
}

// Service drains due scheduled notifications. Each row is claimed with a
// conditional pending->processing transition before any work happens, so
// concurrent cycles (multiple instances, a manual drain racing the periodic
// trigger) can never double-send: the loser's claim fails and the row is
// skipped for this cycle.
type Service interface {
	ProcessDue(ctx context.Context, limit int) (*Result, error)
}

type service struct {
	scheduledRepo repository.ScheduledNotificationRepository
	targetingSvc  targeting.Service
	deliverySvc   delivery.Service
}

func NewService(
	scheduledRepo repository.ScheduledNotificationRepository,
	targetingSvc targeting.Service,
	deliverySvc delivery.Service,
) Service {
	return &service{
		scheduledRepo: scheduledRepo,
		targetingSvc:  targetingSvc,
		deliverySvc:   deliverySvc,
	}
}

func (s *service) ProcessDue(ctx context.Context, limit int) (*Result, error) {
	if limit < 1 {
		limit = 100
	}

	due, err := s.scheduledRepo.ListDue(ctx, time.Now(), limit)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, sn := range due {
		claimed, err := s.scheduledRepo.Claim(ctx, sn.ID)
		if err != nil {
			log.Printf("failed to claim scheduled notification %s: %v", sn.ID, err)
			continue
		}
		if !claimed {
			// Another processor got here first; not an error.
			continue
		}

		result.Processed++

		if s.processClaimed(ctx, &sn) {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	return result, nil
}

// processClaimed resolves and delivers one claimed row, then moves it to its
// terminal state. Resolution happens here, at fire time, so the audience
// reflects current membership rather than the membership at creation time.
// Per-recipient failures inside delivery do not fail the row; the send log
// carries the granular counts.
func (s *service) processClaimed(ctx context.Context, sn *domain.ScheduledNotification) bool {
	recipients, err := s.targetingSvc.Resolve(ctx, sn.TargetType, sn.TargetIDs, sn.OrganizationID)
	if err != nil {
		s.fail(ctx, sn, "target resolution failed: "+err.Error())
		return false
	}

	payload := domain.BroadcastPayload{
		TargetType: sn.TargetType,
		Title:      sn.Title,
		Message:    sn.Message,
		Kind:       sn.Kind,
		Priority:   sn.Priority,
		Link:       sn.Link,
	}

	if _, err := s.deliverySvc.Deliver(ctx, sn.CreatorID, sn.OrganizationID, payload, recipients); err != nil {
		s.fail(ctx, sn, "delivery failed: "+err.Error())
		return false
	}

	if err := s.scheduledRepo.MarkSent(ctx, sn.ID, time.Now()); err != nil {
		log.Printf("failed to mark scheduled notification %s as sent: %v", sn.ID, err)
	}
	return true
}

func (s *service) fail(ctx context.Context, sn *domain.ScheduledNotification, reason string) {
	log.Printf("scheduled notification %s failed: %s", sn.ID, reason)
	if err := s.scheduledRepo.MarkFailed(ctx, sn.ID, reason); err != nil {
		log.Printf("failed to mark scheduled notification %s as failed: %v", sn.ID, err)
	}
}
