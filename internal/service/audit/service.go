package audit

import (
	"context"
	"log"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/repository"
)

// Service writes audit entries best-effort. Record never blocks or fails the
// caller; a lost audit row is logged and forgotten.
type Service interface {
	Record(input domain.CreateAuditLogInput)
	GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) Record(input domain.CreateAuditLogInput) {
	go func() {
		entry := repository.NewAuditLog(input)
		if err := s.auditRepo.Create(context.Background(), entry); err != nil {
			log.Printf("failed to write audit log (%s %s): %v", input.Action, input.EntityType, err)
		}
	}()
}

func (s *service) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
