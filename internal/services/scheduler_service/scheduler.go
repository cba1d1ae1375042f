package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tierra_admin/internal/lib/logger/sl"

	"github.com/robfig/cron/v3"
)

// Publisher is the sweep the scheduler drives on its cadence.
type Publisher interface {
	PublishDue(ctx context.Context, now time.Time) (int, error)
}

// Scheduler runs the scheduled-publishing sweep on a cron cadence.
type Scheduler struct {
	log       *slog.Logger
	cron      *cron.Cron
	publisher Publisher
	schedule  string
}

func NewScheduler(log *slog.Logger, publisher Publisher, schedule string) *Scheduler {
	return &Scheduler{
		log:       log,
		cron:      cron.New(),
		publisher: publisher,
		schedule:  schedule,
	}
}

// Start registers the sweep and begins ticking. The configured
// schedule uses the standard cron format or @every descriptors.
func (s *Scheduler) Start() error {
	const op = "scheduler_service.Start"

	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cron.Start()
	s.log.Info("publish scheduler started", slog.String("schedule", s.schedule))

	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("publish scheduler stopped")
}

func (s *Scheduler) sweep() {
	const op = "scheduler_service.sweep"
	log := s.log.With(slog.String("op", op))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	published, err := s.publisher.PublishDue(ctx, time.Now().UTC())
	if err != nil {
		log.Error("publish sweep failed", sl.Err(err))
		return
	}

	if published > 0 {
		log.Info("publish sweep finished", slog.Int("published", published))
	}
}
