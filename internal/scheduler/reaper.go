package scheduler

import (
	"context"
	"time"

	"github.com/omega/animator/internal/biz/script"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

const interruptedReason = "execution interrupted"

// Reaper fails scripts whose execution stopped making progress, such as
// after a process restart.
type Reaper struct {
	repo       script.Repo
	staleAfter time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewReaper(repo script.Repo, staleAfter time.Duration, logger *zap.Logger) *Reaper {
	if staleAfter <= 0 {
		staleAfter = 30 * time.Minute
	}
	return &Reaper{repo: repo, staleAfter: staleAfter, logger: logger.Named("reaper"), now: time.Now}
}

// Reap returns how many scripts were marked failed.
func (r *Reaper) Reap(ctx context.Context) (int, error) {
	cutoff := r.now().Add(-r.staleAfter)
	stale, err := r.repo.ListStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, sc := range stale {
		if err := sc.MarkFailed(interruptedReason, sc.Attempts); err != nil {
			r.logger.Warn("cannot fail stale script", zap.String("script_id", sc.ID), zap.Error(err))
			continue
		}
		guard := script.Guard{From: script.ActiveStatuses, UpdatedBefore: mo.Some(cutoff)}
		ok, err := r.repo.UpdateIf(ctx, sc.ID, guard, sc.ResultPatch())
		if err != nil {
			r.logger.Error("failed to save stale script", zap.String("script_id", sc.ID), zap.Error(err))
			continue
		}
		if !ok {
			// the run made progress or finished after the scan
			continue
		}
		reaped++
		r.logger.Warn("stale script marked failed", zap.String("script_id", sc.ID), zap.Time("updated_at", sc.UpdatedAt))
	}
	return reaped, nil
}
