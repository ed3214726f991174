package service

import (
	"github.com/redis/go-redis/v9"

	"plataforma-pm/internal/config"
	"plataforma-pm/internal/repository"
	"plataforma-pm/internal/service/audit"
	"plataforma-pm/internal/service/auth"
	"plataforma-pm/internal/service/authz"
	"plataforma-pm/internal/service/broadcast"
	"plataforma-pm/internal/service/delivery"
	"plataforma-pm/internal/service/email"
	"plataforma-pm/internal/service/notification"
	"plataforma-pm/internal/service/scheduler"
	"plataforma-pm/internal/service/stats"
	"plataforma-pm/internal/service/targeting"
)

type Services struct {
	Auth         auth.Service
	Authz        authz.Service
	Targeting    targeting.Service
	Delivery     delivery.Service
	Broadcast    broadcast.Service
	Scheduler    scheduler.Service
	Stats        stats.Service
	Notification notification.Service
	Audit        audit.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, cfg)
	auditService := audit.NewService(repos.AuditLog)
	authzService := authz.NewService(repos.Membership)
	targetingService := targeting.NewService(repos.User, repos.Organization, repos.Membership)
	deliveryService := delivery.NewService(repos.Notification, repos.Delivery, repos.SendLog, repos.User, emailService)
	broadcastService := broadcast.NewService(repos.Scheduled, repos.SendLog, repos.Delivery, authzService, targetingService, deliveryService, auditService)
	schedulerService := scheduler.NewService(repos.Scheduled, targetingService, deliveryService)
	statsService := stats.NewService(repos.SendLog, repos.Scheduled, redis)
	notificationService := notification.NewService(repos.Notification, repos.Delivery)

	return &Services{
		Auth:         authService,
		Authz:        authzService,
		Targeting:    targetingService,
		Delivery:     deliveryService,
		Broadcast:    broadcastService,
		Scheduler:    schedulerService,
		Stats:        statsService,
		Notification: notificationService,
		Audit:        auditService,
		Email:        emailService,
	}
}
