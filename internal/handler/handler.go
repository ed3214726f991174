package handler

import "plataforma-pm/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Broadcast    *BroadcastHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Broadcast:    NewBroadcastHandler(services.Broadcast, services.Scheduler, services.Stats, services.Authz, services.Targeting),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
	}
}
