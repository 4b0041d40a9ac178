package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is anything that can be health checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health is the result of the most recent probe.
type Health struct {
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// HealthChecker probes the render executor and keeps the last result.
type HealthChecker struct {
	target  Pinger
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu   sync.RWMutex
	last Health
}

func NewHealthChecker(target Pinger, timeout time.Duration, logger *zap.Logger) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{
		target:  target,
		timeout: timeout,
		logger:  logger.Named("health_checker"),
		now:     time.Now,
	}
}

// Check probes the target once and records the result.
func (h *HealthChecker) Check(ctx context.Context) Health {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.target.Ping(ctx)
	result := Health{Healthy: err == nil, CheckedAt: h.now()}
	if err != nil {
		result.Error = err.Error()
	}

	h.mu.Lock()
	previous := h.last
	h.last = result
	h.mu.Unlock()

	switch {
	case !result.Healthy && (previous.Healthy || previous.CheckedAt.IsZero()):
		h.logger.Warn("render executor unhealthy", zap.Error(err))
	case result.Healthy && !previous.Healthy:
		h.logger.Info("render executor healthy")
	default:
		h.logger.Debug("render executor probed", zap.Bool("healthy", result.Healthy))
	}
	return result
}

// Last returns the most recent result; CheckedAt is zero before the first
// probe.
func (h *HealthChecker) Last() Health {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}
