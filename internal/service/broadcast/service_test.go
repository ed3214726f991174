package broadcast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"plataforma-pm/internal/domain"
	"plataforma-pm/internal/service/broadcast"
	"plataforma-pm/internal/service/delivery"
	"plataforma-pm/tests/mocks"
)

type fixture struct {
	scheduled *mocks.ScheduledNotificationRepository
	sendLog   *mocks.SendLogRepository
	delivery  *mocks.DeliveryRepository
	authz     *mocks.AuthzService
	targeting *mocks.TargetingService
	deliverer *mocks.DeliveryService
	audit     *mocks.AuditService
	svc       broadcast.Service
}

func newFixture() *fixture {
	f := &fixture{
		scheduled: new(mocks.ScheduledNotificationRepository),
		sendLog:   new(mocks.SendLogRepository),
		delivery:  new(mocks.DeliveryRepository),
		authz:     new(mocks.AuthzService),
		targeting: new(mocks.TargetingService),
		deliverer: new(mocks.DeliveryService),
		audit:     new(mocks.AuditService),
	}
	f.svc = broadcast.NewService(f.scheduled, f.sendLog, f.delivery, f.authz, f.targeting, f.deliverer, f.audit)
	return f
}

func sendInput(targetType domain.TargetType, targetIDs []string) domain.SendBroadcastInput {
	return domain.SendBroadcastInput{
		TargetType: targetType,
		TargetIDs:  targetIDs,
		Title:      "Release 2.4 deployed",
		Message:    "The new boards are live for everyone",
		Kind:       domain.KindSystem,
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()
	caller := &domain.User{ID: uuid.New(), GlobalRole: domain.GlobalRoleUser}
	orgID := uuid.New()

	t.Run("HappyPath", func(t *testing.T) {
		f := newFixture()
		input := sendInput(domain.TargetOrganization, []string{orgID.String()})
		recipients := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		f.authz.On("Authorize", ctx, caller, &orgID, input.TargetType, input.TargetIDs).Return(nil).Once()
		f.targeting.On("Resolve", ctx, input.TargetType, input.TargetIDs, &orgID).Return(recipients, nil).Once()
		f.deliverer.On("Deliver", ctx, caller.ID, &orgID, mock.MatchedBy(func(p domain.BroadcastPayload) bool {
			return p.Title == input.Title && p.Priority == domain.PriorityNormal
		}), recipients).Return(&delivery.Result{SendLogID: uuid.New(), TargetCount: 3, SentCount: 3}, nil).Once()
		f.audit.On("Record", mock.AnythingOfType("domain.CreateAuditLogInput")).Once()

		result, err := f.svc.Send(ctx, caller, &orgID, input)

		assert.NoError(t, err)
		assert.Equal(t, 3, result.TargetCount)
		f.authz.AssertExpectations(t)
		f.targeting.AssertExpectations(t)
		f.deliverer.AssertExpectations(t)
		f.audit.AssertExpectations(t)
	})

	t.Run("DeniedLeavesNoTrace", func(t *testing.T) {
		f := newFixture()
		input := sendInput(domain.TargetAll, nil)

		f.authz.On("Authorize", ctx, caller, &orgID, input.TargetType, input.TargetIDs).
			Return(errors.New("denied")).Once()

		result, err := f.svc.Send(ctx, caller, &orgID, input)

		assert.Error(t, err)
		assert.Nil(t, result)
		f.targeting.AssertNotCalled(t, "Resolve")
		f.deliverer.AssertNotCalled(t, "Deliver")
		f.audit.AssertNotCalled(t, "Record")
	})

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		f := newFixture()

		cases := []domain.SendBroadcastInput{
			{TargetType: "everyone", Title: "t", Message: "m", Kind: domain.KindSystem},
			sendInputWith(func(i *domain.SendBroadcastInput) { i.Title = "" }),
			sendInputWith(func(i *domain.SendBroadcastInput) { i.Message = "" }),
			sendInputWith(func(i *domain.SendBroadcastInput) { i.Kind = "sms" }),
			sendInputWith(func(i *domain.SendBroadcastInput) { i.Priority = "asap" }),
			sendInputWith(func(i *domain.SendBroadcastInput) { link := "not a url"; i.Link = &link }),
		}

		for _, input := range cases {
			_, err := f.svc.Send(ctx, caller, &orgID, input)
			assert.ErrorIs(t, err, broadcast.ErrInvalidInput)
		}
		f.authz.AssertNotCalled(t, "Authorize")
	})
}

func sendInputWith(mutate func(*domain.SendBroadcastInput)) domain.SendBroadcastInput {
	input := sendInput(domain.TargetRole, nil)
	mutate(&input)
	return input
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()
	caller := &domain.User{ID: uuid.New(), GlobalRole: domain.GlobalRoleUser}
	orgID := uuid.New()

	t.Run("CreatesPendingRow", func(t *testing.T) {
		f := newFixture()
		input := domain.ScheduleBroadcastInput{
			SendBroadcastInput: sendInput(domain.TargetRole, nil),
			ScheduledFor:       time.Now().Add(2 * time.Hour),
		}

		f.authz.On("Authorize", ctx, caller, &orgID, input.TargetType, input.TargetIDs).Return(nil).Once()
		f.scheduled.On("Create", ctx, mock.MatchedBy(func(sn *domain.ScheduledNotification) bool {
			return sn.Status == domain.StatusPending &&
				sn.CreatorID == caller.ID &&
				sn.OrganizationID != nil && *sn.OrganizationID == orgID &&
				sn.Priority == domain.PriorityNormal &&
				sn.ScheduledFor.Equal(input.ScheduledFor)
		})).Return(nil).Once()
		f.audit.On("Record", mock.AnythingOfType("domain.CreateAuditLogInput")).Once()

		sn, err := f.svc.Schedule(ctx, caller, &orgID, input)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, sn.Status)
		f.scheduled.AssertExpectations(t)
	})

	t.Run("RequiresScheduledFor", func(t *testing.T) {
		f := newFixture()
		input := domain.ScheduleBroadcastInput{SendBroadcastInput: sendInput(domain.TargetRole, nil)}

		_, err := f.svc.Schedule(ctx, caller, &orgID, input)

		assert.ErrorIs(t, err, broadcast.ErrInvalidInput)
		f.scheduled.AssertNotCalled(t, "Create")
	})
}

func TestListScheduled(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()

	t.Run("DefaultsToPending", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("ListByCreator", ctx, callerID, domain.StatusPending, domain.ListParams{Limit: 50}).
			Return([]domain.ScheduledNotification{}, nil).Once()

		_, err := f.svc.ListScheduled(ctx, callerID, "", domain.ListParams{Limit: 50})
		assert.NoError(t, err)
		f.scheduled.AssertExpectations(t)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ListScheduled(ctx, callerID, "archived", domain.ListParams{})
		assert.ErrorIs(t, err, broadcast.ErrInvalidInput)
	})
}

func TestUpdateScheduled(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()
	id := uuid.New()
	title := "Rescheduled announcement"
	input := domain.UpdateScheduledInput{Title: &title}

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("Update", ctx, id, callerID, input).Return(true, nil).Once()

		err := f.svc.UpdateScheduled(ctx, id, callerID, input)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("Update", ctx, id, callerID, input).Return(false, nil).Once()
		f.scheduled.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := f.svc.UpdateScheduled(ctx, id, callerID, input)
		assert.ErrorIs(t, err, broadcast.ErrNotFound)
	})

	t.Run("NotCreator", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("Update", ctx, id, callerID, input).Return(false, nil).Once()
		f.scheduled.On("GetByID", ctx, id).
			Return(&domain.ScheduledNotification{ID: id, CreatorID: uuid.New(), Status: domain.StatusPending}, nil).Once()

		err := f.svc.UpdateScheduled(ctx, id, callerID, input)
		assert.ErrorIs(t, err, broadcast.ErrNotCreator)
	})

	t.Run("AlreadySent", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("Update", ctx, id, callerID, input).Return(false, nil).Once()
		f.scheduled.On("GetByID", ctx, id).
			Return(&domain.ScheduledNotification{ID: id, CreatorID: callerID, Status: domain.StatusSent}, nil).Once()

		err := f.svc.UpdateScheduled(ctx, id, callerID, input)
		assert.ErrorIs(t, err, broadcast.ErrNotPending)
	})

	t.Run("RejectsBadTitle", func(t *testing.T) {
		f := newFixture()
		empty := ""
		err := f.svc.UpdateScheduled(ctx, id, callerID, domain.UpdateScheduledInput{Title: &empty})
		assert.ErrorIs(t, err, broadcast.ErrInvalidInput)
		f.scheduled.AssertNotCalled(t, "Update")
	})
}

func TestCancelScheduled(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("Cancel", ctx, id, callerID).Return(true, nil).Once()
		f.audit.On("Record", mock.AnythingOfType("domain.CreateAuditLogInput")).Once()

		err := f.svc.CancelScheduled(ctx, id, callerID)
		assert.NoError(t, err)
		f.audit.AssertExpectations(t)
	})

	t.Run("AlreadySentConflicts", func(t *testing.T) {
		f := newFixture()
		f.scheduled.On("Cancel", ctx, id, callerID).Return(false, nil).Once()
		f.scheduled.On("GetByID", ctx, id).
			Return(&domain.ScheduledNotification{ID: id, CreatorID: callerID, Status: domain.StatusSent}, nil).Once()

		err := f.svc.CancelScheduled(ctx, id, callerID)
		assert.ErrorIs(t, err, broadcast.ErrNotPending)
		f.audit.AssertNotCalled(t, "Record")
	})
}

func TestDeliveryStats(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("CombinesLogAndReadCount", func(t *testing.T) {
		f := newFixture()
		f.sendLog.On("GetByID", ctx, id).Return(&domain.NotificationSendLog{
			ID: id, TargetCount: 20, SentCount: 18, FailedCount: 2,
		}, nil).Once()
		f.delivery.On("CountRead", ctx, id).Return(int64(7), nil).Once()

		stats, err := f.svc.DeliveryStats(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, 18, stats.SentCount)
		assert.Equal(t, int64(7), stats.ReadCount)
	})

	t.Run("UnknownSendLog", func(t *testing.T) {
		f := newFixture()
		f.sendLog.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.DeliveryStats(ctx, id)
		assert.ErrorIs(t, err, broadcast.ErrNotFound)
	})
}
