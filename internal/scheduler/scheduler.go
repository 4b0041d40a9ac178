package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/omega/animator/internal/biz/script"
	"github.com/omega/animator/internal/render"
	"github.com/omega/animator/pkg/config"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(New, NewHealthCheckerFromConfig, NewReaperFromConfig)

func NewHealthCheckerFromConfig(cfg config.Config, client *render.Client, logger *zap.Logger) *HealthChecker {
	return NewHealthChecker(client, cfg.Scheduler.HealthTimeout, logger)
}

func NewReaperFromConfig(cfg config.Config, repo script.Repo, logger *zap.Logger) *Reaper {
	return NewReaper(repo, cfg.Scheduler.StaleAfter, logger)
}

// Scheduler runs the periodic jobs.
type Scheduler struct {
	config  config.SchedulerConfig
	cron    *cron.Cron
	health  *HealthChecker
	reaper  *Reaper
	logger  *zap.Logger
	timeout time.Duration
}

func New(cfg config.Config, health *HealthChecker, reaper *Reaper, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		config:  cfg.Scheduler,
		cron:    cron.New(cron.WithSeconds()),
		health:  health,
		reaper:  reaper,
		logger:  logger.Named("scheduler"),
		timeout: time.Minute,
	}
	if !s.config.Enabled {
		return s, nil
	}

	if _, err := s.cron.AddFunc(s.config.HealthCheckSpec, s.checkHealth); err != nil {
		return nil, fmt.Errorf("invalid health check spec %q: %w", s.config.HealthCheckSpec, err)
	}
	if _, err := s.cron.AddFunc(s.config.ReaperSpec, s.reapStale); err != nil {
		return nil, fmt.Errorf("invalid reaper spec %q: %w", s.config.ReaperSpec, err)
	}
	return s, nil
}

func (s *Scheduler) checkHealth() {
	s.health.Check(context.Background())
}

func (s *Scheduler) reapStale() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	n, err := s.reaper.Reap(ctx)
	if err != nil {
		s.logger.Error("failed to reap stale scripts", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("reaped stale scripts", zap.Int("count", n))
	}
}

// Start begins running jobs.
func (s *Scheduler) Start() {
	if !s.config.Enabled {
		s.logger.Info("scheduler is disabled")
		return
	}
	go s.checkHealth()
	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("health_check_spec", s.config.HealthCheckSpec),
		zap.String("reaper_spec", s.config.ReaperSpec))
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) Health() Health {
	return s.health.Last()
}
