package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Warmer reloads the shared default catalog
type Warmer interface {
	Warm(ctx context.Context) ([]models.MediaRecord, error)
}

// Expirer drops expired cache items
type Expirer interface {
	DeleteExpired()
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	warmer   Warmer
	expirers []Expirer
	logger   *logrus.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// newBackOff builds the retry policy of one warm-up run
	newBackOff func() backoff.BackOff
}

// NewScheduler creates a new scheduler
func NewScheduler(warmer Warmer, expirers []Expirer, logger *logrus.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:     cron.New(),
		warmer:   warmer,
		expirers: expirers,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 2 * time.Second
			b.MaxInterval = time.Minute
			b.MaxElapsedTime = 10 * time.Minute
			return b
		},
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	// Every 6 hours: warm the default catalog
	_, err := s.cron.AddFunc("0 */6 * * *", func() {
		s.runWarm()
	})
	if err != nil {
		return fmt.Errorf("failed to add warm job: %w", err)
	}

	// Every 10 minutes: drop expired cache items and idle sessions
	_, err = s.cron.AddFunc("*/10 * * * *", func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to add cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// Warm immediately so the first browse is served from cache
	go s.runWarm()

	return nil
}

// Stop stops the scheduler and abandons a running warm-up
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cancel()
	<-s.cron.Stop().Done()
}

// runWarm executes the warm job, retrying with exponential backoff
func (s *Scheduler) runWarm() {
	s.logger.Info("Running scheduled catalog warm-up")
	start := time.Now()

	var count int
	attempt := 0
	operation := func() error {
		attempt++
		records, err := s.warmer.Warm(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		count = len(records)
		return nil
	}
	notify := func(err error, next time.Duration) {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"retry":   next,
		}).Warn("Catalog warm-up failed, retrying")
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(s.newBackOff(), s.ctx), notify)
	if err != nil {
		s.logger.WithError(err).Error("Catalog warm-up job failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"records":  count,
		"attempts": attempt,
		"duration": time.Since(start),
	}).Info("Catalog warm-up completed successfully")
}

// runCleanup executes the cleanup job
func (s *Scheduler) runCleanup() {
	s.logger.Debug("Running expired cache cleanup")
	for _, e := range s.expirers {
		e.DeleteExpired()
	}
}
