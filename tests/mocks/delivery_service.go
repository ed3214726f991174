package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/service/delivery"
)

type DeliveryService struct {
	mock.Mock
}

func (m *DeliveryService) Deliver(ctx context.Context, creatorID uuid.UUID, orgID *uuid.UUID, payload domain.BroadcastPayload, recipients []uuid.UUID) (*delivery.Result, error) {
	args := m.Called(ctx, creatorID, orgID, payload, recipients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Result), args.Error(1)
}
