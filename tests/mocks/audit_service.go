package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
)

type AuditService struct {
	mock.Mock
}

func (m *AuditService) Record(input domain.CreateAuditLogInput) {
	m.Called(input)
}

func (m *AuditService) GetRecentActivities(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}
