package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/service/delivery"
	"plataforma-pm/tests/mocks"
)

func payload() domain.BroadcastPayload {
	return domain.BroadcastPayload{
		TargetType: domain.TargetOrganization,
		Title:      "Maintenance window",
		Message:    "The platform will be down tonight",
		Kind:       domain.KindSystem,
		Priority:   domain.PriorityHigh,
	}
}

func TestDeliver_PartialFailure(t *testing.T) {
	mockNotif := new(mocks.NotificationRepository)
	mockDelivery := new(mocks.DeliveryRepository)
	mockSendLog := new(mocks.SendLogRepository)
	mockUsers := new(mocks.UserRepository)
	svc := delivery.NewService(mockNotif, mockDelivery, mockSendLog, mockUsers, nil)

	ctx := context.Background()
	creatorID := uuid.New()

	recipients := make([]uuid.UUID, 10)
	for i := range recipients {
		recipients[i] = uuid.New()
	}
	failing := map[uuid.UUID]bool{recipients[3]: true, recipients[7]: true}

	mockNotif.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return failing[n.UserID]
	})).Return(errors.New("insert failed")).Twice()
	mockNotif.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return !failing[n.UserID]
	})).Return(nil).Times(8)

	var rows []domain.NotificationDelivery
	mockDelivery.On("Create", ctx, mock.AnythingOfType("*domain.NotificationDelivery")).
		Run(func(args mock.Arguments) {
			rows = append(rows, *args.Get(1).(*domain.NotificationDelivery))
		}).Return(nil).Times(10)

	mockSendLog.On("Create", ctx, mock.MatchedBy(func(l *domain.NotificationSendLog) bool {
		return l.TargetCount == 10 && l.SentCount == 8 && l.FailedCount == 2 && l.CreatorID == creatorID
	})).Return(nil).Once()

	result, err := svc.Deliver(ctx, creatorID, nil, payload(), recipients)

	assert.NoError(t, err)
	assert.Equal(t, 10, result.TargetCount)
	assert.Equal(t, 8, result.SentCount)
	assert.Equal(t, 2, result.FailedCount)

	assert.Len(t, rows, 10)
	for _, row := range rows {
		assert.Equal(t, result.SendLogID, row.SendLogID)
		if failing[row.UserID] {
			assert.True(t, row.Failed)
			assert.Nil(t, row.NotificationID)
			assert.NotNil(t, row.ErrorMessage)
		} else {
			assert.False(t, row.Failed)
			assert.NotNil(t, row.NotificationID)
		}
	}

	mockNotif.AssertExpectations(t)
	mockDelivery.AssertExpectations(t)
	mockSendLog.AssertExpectations(t)
}

func TestDeliver_EmptyAudience(t *testing.T) {
	mockNotif := new(mocks.NotificationRepository)
	mockDelivery := new(mocks.DeliveryRepository)
	mockSendLog := new(mocks.SendLogRepository)
	mockUsers := new(mocks.UserRepository)
	svc := delivery.NewService(mockNotif, mockDelivery, mockSendLog, mockUsers, nil)

	ctx := context.Background()

	mockSendLog.On("Create", ctx, mock.MatchedBy(func(l *domain.NotificationSendLog) bool {
		return l.TargetCount == 0 && l.SentCount == 0 && l.FailedCount == 0
	})).Return(nil).Once()

	result, err := svc.Deliver(ctx, uuid.New(), nil, payload(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.TargetCount)
	mockNotif.AssertNotCalled(t, "Create")
	mockDelivery.AssertNotCalled(t, "Create")
	mockSendLog.AssertExpectations(t)
}

func TestDeliver_SendLogWriteFails(t *testing.T) {
	mockNotif := new(mocks.NotificationRepository)
	mockDelivery := new(mocks.DeliveryRepository)
	mockSendLog := new(mocks.SendLogRepository)
	mockUsers := new(mocks.UserRepository)
	svc := delivery.NewService(mockNotif, mockDelivery, mockSendLog, mockUsers, nil)

	ctx := context.Background()
	recipient := uuid.New()

	mockNotif.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockDelivery.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockSendLog.On("Create", ctx, mock.Anything).Return(errors.New("log insert failed")).Once()

	result, err := svc.Deliver(ctx, uuid.New(), nil, payload(), []uuid.UUID{recipient})

	assert.Error(t, err)
	assert.Nil(t, result)
}
