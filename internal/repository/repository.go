package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Organization OrganizationRepository
	Membership   MembershipRepository
	Notification NotificationRepository
	Scheduled    ScheduledNotificationRepository
	Delivery     DeliveryRepository
	SendLog      SendLogRepository
	AuditLog     AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Organization: NewOrganizationRepository(db),
		Membership:   NewMembershipRepository(db),
		Notification: NewNotificationRepository(db),
		Scheduled:    NewScheduledNotificationRepository(db),
		Delivery:     NewDeliveryRepository(db),
		SendLog:      NewSendLogRepository(db),
		AuditLog:     NewAuditLogRepository(db),
	}
}
