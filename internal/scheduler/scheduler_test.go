package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/omega/animator/internal/biz/script"
	"github.com/omega/animator/internal/infra/persistence/scriptrepo"
	"github.com/omega/animator/internal/orm/ormtest"
	"github.com/omega/animator/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (f *fakePinger) Ping(context.Context) error { return f.err }

func TestHealthCheckerRecordsResult(t *testing.T) {
	p := &fakePinger{}
	h := NewHealthChecker(p, time.Second, zap.NewNop())
	assert.True(t, h.Last().CheckedAt.IsZero())

	got := h.Check(context.Background())
	assert.True(t, got.Healthy)
	assert.Equal(t, got, h.Last())

	p.err = errors.New("connection refused")
	got = h.Check(context.Background())
	assert.False(t, got.Healthy)
	assert.Equal(t, "connection refused", h.Last().Error)
}

func TestReaperFailsStaleScripts(t *testing.T) {
	ctx := context.Background()
	repo := scriptrepo.NewRepositoryImpl(ormtest.NewStorage(t).DB())

	stale := script.New("p", "c", "gemini")
	stale.Status = script.StatusDebugging
	stale.Attempts = 2
	require.NoError(t, repo.Create(ctx, stale))

	done := script.New("p", "c", "gemini")
	done.Status = script.StatusSuccessful
	require.NoError(t, repo.Create(ctx, done))

	r := NewReaper(repo, time.Minute, zap.NewNop())
	r.now = func() time.Time { return time.Now().Add(time.Hour) }

	n, err := r.Reap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, script.StatusFailed, got.Status)
	assert.Equal(t, interruptedReason, got.ErrorMessage)
	assert.Equal(t, 2, got.Attempts)

	got, err = repo.GetByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, script.StatusSuccessful, got.Status)
}

func TestReaperSkipsFreshScripts(t *testing.T) {
	ctx := context.Background()
	repo := scriptrepo.NewRepositoryImpl(ormtest.NewStorage(t).DB())

	running := script.New("p", "c", "gemini")
	running.Status = script.StatusExecuting
	require.NoError(t, repo.Create(ctx, running))

	n, err := NewReaper(repo, time.Hour, zap.NewNop()).Reap(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewRejectsBadSpec(t *testing.T) {
	cfg := config.Config{Scheduler: config.SchedulerConfig{
		Enabled:         true,
		HealthCheckSpec: "not a spec",
		ReaperSpec:      "0 */5 * * * *",
	}}
	_, err := New(cfg, NewHealthChecker(&fakePinger{}, 0, zap.NewNop()), nil, zap.NewNop())
	assert.Error(t, err)

	cfg.Scheduler.HealthCheckSpec = "@every 30s"
	s, err := New(cfg, NewHealthChecker(&fakePinger{}, 0, zap.NewNop()), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestDisabledSchedulerRegistersNothing(t *testing.T) {
	s, err := New(config.Config{}, NewHealthChecker(&fakePinger{}, 0, zap.NewNop()), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, s.cron.Entries())
	s.Start()
	s.Stop()
}
