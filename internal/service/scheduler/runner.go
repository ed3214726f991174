package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner drives the processor on a fixed interval.
type Runner struct {
	cron      *cron.Cron
	svc       Service
	batchSize int
	interval  time.Duration
}

func NewRunner(svc Service, interval time.Duration, batchSize int) *Runner {
	return &Runner{
		cron:      cron.New(),
		svc:       svc,
		batchSize: batchSize,
		interval:  interval,
	}
}

func (r *Runner) Start() error {
	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := r.cron.AddFunc(spec, r.tick); err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("scheduled notification processor started (%s, batch %d)", spec, r.batchSize)
	return nil
}

func (r *Runner) Stop() {
	r.cron.Stop()
}

func (r *Runner) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()

	result, err := r.svc.ProcessDue(ctx, r.batchSize)
	if err != nil {
		log.Printf("scheduled notification cycle failed: %v", err)
		return
	}
	if result.Processed > 0 {
		log.Printf("processed %d scheduled notifications (%d sent, %d failed)", result.Processed, result.Sent, result.Failed)
	}
}
