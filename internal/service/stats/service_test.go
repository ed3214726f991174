package stats_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"plataforma-pm/internal/service/stats"
	"plataforma-pm/tests/mocks"
)

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("PlatformWide", func(t *testing.T) {
		mockSendLog := new(mocks.SendLogRepository)
		mockScheduled := new(mocks.ScheduledNotificationRepository)
		svc := stats.NewService(mockSendLog, mockScheduled, nil)

		mockSendLog.On("Aggregate", ctx, (*uuid.UUID)(nil)).Return(int64(90), int64(100), nil).Once()
		mockScheduled.On("CountPending", ctx, (*uuid.UUID)(nil)).Return(int64(4), nil).Once()

		summary, err := svc.Summary(ctx, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(90), summary.TotalSent)
		assert.Equal(t, 90, summary.SuccessRate)
		assert.Equal(t, int64(4), summary.TotalScheduled)
	})

	t.Run("OrgScoped", func(t *testing.T) {
		mockSendLog := new(mocks.SendLogRepository)
		mockScheduled := new(mocks.ScheduledNotificationRepository)
		svc := stats.NewService(mockSendLog, mockScheduled, nil)

		orgID := uuid.New()
		mockSendLog.On("Aggregate", ctx, &orgID).Return(int64(10), int64(10), nil).Once()
		mockScheduled.On("CountPending", ctx, &orgID).Return(int64(0), nil).Once()

		summary, err := svc.Summary(ctx, &orgID)

		assert.NoError(t, err)
		assert.Equal(t, 100, summary.SuccessRate)
		mockSendLog.AssertExpectations(t)
	})

	t.Run("NoSendsReadsAsFullSuccess", func(t *testing.T) {
		mockSendLog := new(mocks.SendLogRepository)
		mockScheduled := new(mocks.ScheduledNotificationRepository)
		svc := stats.NewService(mockSendLog, mockScheduled, nil)

		mockSendLog.On("Aggregate", ctx, (*uuid.UUID)(nil)).Return(int64(0), int64(0), nil).Once()
		mockScheduled.On("CountPending", ctx, (*uuid.UUID)(nil)).Return(int64(2), nil).Once()

		summary, err := svc.Summary(ctx, nil)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), summary.TotalSent)
		assert.Equal(t, 100, summary.SuccessRate)
	})
}
