package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"plataforma-pm/internal/repository"
)

// Summary aggregates a scope's send history. SuccessRate is the percentage of
// targeted recipients actually delivered to, and reads 100 when nothing was
// ever targeted: no sends attempted is not a failure.
type Summary struct {
	TotalSent      int64 `json:"total_sent"`
	SuccessRate    int   `json:"success_rate"`
	TotalScheduled int64 `json:"total_scheduled"`
}

// Service derives summaries from send logs and pending scheduled rows. It
// performs no writes; the redis cache only shortcuts the read path.
type Service interface {
	Summary(ctx context.Context, orgID *uuid.UUID) (*Summary, error)
}

type service struct {
	sendLogRepo   repository.SendLogRepository
	scheduledRepo repository.ScheduledNotificationRepository
	redis         *redis.Client
}

func NewService(sendLogRepo repository.SendLogRepository, scheduledRepo repository.ScheduledNotificationRepository, redis *redis.Client) Service {
	return &service{
		sendLogRepo:   sendLogRepo,
		scheduledRepo: scheduledRepo,
		redis:         redis,
	}
}

func (s *service) Summary(ctx context.Context, orgID *uuid.UUID) (*Summary, error) {
	cacheKey := "broadcast:summary:platform"
	if orgID != nil {
		cacheKey = "broadcast:summary:" + orgID.String()
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary Summary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	totalSent, totalTarget, err := s.sendLogRepo.Aggregate(ctx, orgID)
	if err != nil {
		return nil, err
	}

	totalScheduled, err := s.scheduledRepo.CountPending(ctx, orgID)
	if err != nil {
		return nil, err
	}

	successRate := 100
	if totalTarget > 0 {
		successRate = int(float64(totalSent) / float64(totalTarget) * 100)
	}

	summary := &Summary{
		TotalSent:      totalSent,
		SuccessRate:    successRate,
		TotalScheduled: totalScheduled,
	}

	if s.redis != nil {
		if summaryJSON, err := json.Marshal(summary); err == nil {
			_ = s.redis.Set(ctx, cacheKey, summaryJSON, time.Minute).Err()
		}
	}

	return summary, nil
}
