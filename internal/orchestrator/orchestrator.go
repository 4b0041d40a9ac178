package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/omega/animator/internal/biz/attempt"
	"github.com/omega/animator/internal/biz/script"
	"github.com/omega/animator/internal/depinstall"
	"github.com/omega/animator/internal/generator"
	"github.com/omega/animator/internal/llm"
	"github.com/omega/animator/internal/render"
	"github.com/omega/animator/internal/result"
	"github.com/omega/animator/internal/sanitizer"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(
	New,
	wire.Bind(new(Executor), new(*render.Client)),
	wire.Bind(new(Installer), new(*depinstall.Installer)),
	wire.Bind(new(Repairer), new(*generator.Debugger)),
	wire.Bind(new(Cleaner), new(*sanitizer.Sanitizer)),
)

const DefaultMaxAttempts = 3

const noSceneClassError = "No Scene class found in the script"

type Executor interface {
	Execute(ctx context.Context, req render.Request) result.Result[render.Output]
}

type Installer interface {
	Install(ctx context.Context, errText string) bool
}

type Repairer interface {
	Debug(ctx context.Context, script, errText string) (string, error)
}

type Cleaner interface {
	Clean(raw string) string
}

// Tracker observes a run. Errors are logged and do not stop the run.
type Tracker interface {
	StatusChanged(ctx context.Context, scriptID string, status script.Status) error
	AttemptCompleted(ctx context.Context, a *attempt.Attempt) error
}

type nopTracker struct{}

func (nopTracker) StatusChanged(context.Context, string, script.Status) error { return nil }
func (nopTracker) AttemptCompleted(context.Context, *attempt.Attempt) error   { return nil }

type Config struct {
	MaxAttempts int
	SceneBase   string
}

// Outcome is a successful run.
type Outcome struct {
	Script     string
	SceneClass string
	OutputPath string
	Output     string
	Attempts   int
}

// ExhaustedError is returned when every attempt failed.
type ExhaustedError struct {
	Attempts  int
	LastError string
	// Script is the last script that was submitted.
	Script string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to execute script after %d attempts: %s", e.Attempts, e.LastError)
}

// Orchestrator runs a script through the render executor, repairing it
// between attempts.
type Orchestrator struct {
	cfg       Config
	executor  Executor
	installer Installer
	repairer  Repairer
	cleaner   Cleaner
	logger    *zap.Logger
	now       func() time.Time
}

func New(cfg Config, executor Executor, installer Installer, repairer Repairer, cleaner Cleaner, logger *zap.Logger) *Orchestrator {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.SceneBase == "" {
		cfg.SceneBase = sanitizer.DefaultSceneBase
	}
	return &Orchestrator{
		cfg:       cfg,
		executor:  executor,
		installer: installer,
		repairer:  repairer,
		cleaner:   cleaner,
		logger:    logger.Named("orchestrator"),
		now:       time.Now,
	}
}

type run struct {
	scriptID string
	tracker  Tracker
	status   script.Status
	logger   *zap.Logger
}

func (r *run) setStatus(ctx context.Context, status script.Status) {
	if r.status == status {
		return
	}
	r.logger.Info("status changed", zap.String("from", string(r.status)), zap.String("to", string(status)))
	r.status = status
	if err := r.tracker.StatusChanged(ctx, r.scriptID, status); err != nil {
		r.logger.Warn("failed to record status", zap.Error(err))
	}
}

func (r *run) record(ctx context.Context, a *attempt.Attempt) {
	if err := r.tracker.AttemptCompleted(ctx, a); err != nil {
		r.logger.Warn("failed to record attempt", zap.Int("attempt", a.Number), zap.Error(err))
	}
}

// Run executes content, making at most MaxAttempts render calls. It returns
// an *ExhaustedError when the budget runs out, or an llm.ErrProviderConfig
// error when repair cannot be configured.
func (o *Orchestrator) Run(ctx context.Context, scriptID, content string, tracker Tracker) (*Outcome, error) {
	if tracker == nil {
		tracker = nopTracker{}
	}
	r := &run{
		scriptID: scriptID,
		tracker:  tracker,
		status:   script.StatusPending,
		logger:   o.logger.With(zap.String("script_id", scriptID)),
	}

	current := content
	var lastErr string
	for number := 1; number <= o.cfg.MaxAttempts; number++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("execution of script %s cancelled: %w", scriptID, err)
		}
		r.setStatus(ctx, script.StatusExecuting)
		r.logger.Info("executing script", zap.Int("attempt", number), zap.Int("max_attempts", o.cfg.MaxAttempts))

		a := &attempt.Attempt{
			ScriptID:       scriptID,
			Number:         number,
			OriginalScript: current,
			StartedAt:      o.now(),
		}
		res := o.submit(ctx, scriptID, current, a)
		a.CompletedAt = o.now()
		a.Output = res.Value.Output

		if res.OK {
			a.Successful = true
			a.OutputPath = res.Value.OutputPath
			r.record(ctx, a)
			r.logger.Info("script executed successfully",
				zap.Int("attempt", number),
				zap.String("output_path", res.Value.OutputPath))
			return &Outcome{
				Script:     current,
				SceneClass: a.SceneClass,
				OutputPath: res.Value.OutputPath,
				Output:     res.Value.Output,
				Attempts:   number,
			}, nil
		}

		lastErr = res.ErrorText
		a.Error = lastErr
		r.logger.Warn("execution attempt failed", zap.Int("attempt", number), zap.String("error", lastErr))

		if number == o.cfg.MaxAttempts {
			r.record(ctx, a)
			break
		}

		next, repair, err := o.repair(ctx, r, current, lastErr)
		a.Repair = repair
		if next != current {
			a.ModifiedScript = next
		}
		r.record(ctx, a)
		if err != nil {
			return nil, err
		}
		current = next
	}

	r.logger.Error("attempt budget exhausted", zap.Int("attempts", o.cfg.MaxAttempts), zap.String("error", lastErr))
	return nil, &ExhaustedError{Attempts: o.cfg.MaxAttempts, LastError: lastErr, Script: current}
}

func (o *Orchestrator) submit(ctx context.Context, scriptID, content string, a *attempt.Attempt) result.Result[render.Output] {
	scene, ok := sanitizer.SceneClassName(content, o.cfg.SceneBase)
	if !ok {
		return result.Fail[render.Output](noSceneClassError)
	}
	a.SceneClass = scene
	return o.executor.Execute(ctx, render.Request{
		ScriptContent: content,
		SceneClass:    scene,
		ScriptID:      scriptID,
	})
}

// repair picks the script for the next attempt. Dependency installation is
// tried first and keeps the script; otherwise the debugger rewrites it. A
// debugger failure keeps the current script unless it is a configuration
// error, which is returned.
func (o *Orchestrator) repair(ctx context.Context, r *run, current, errText string) (string, attempt.RepairKind, error) {
	if o.installer != nil && o.installer.Install(ctx, errText) {
		r.logger.Info("installed missing dependency, retrying same script")
		return current, attempt.RepairInstall, nil
	}

	r.setStatus(ctx, script.StatusDebugging)
	fixed, err := o.repairer.Debug(ctx, current, errText)
	if err != nil {
		if errors.Is(err, llm.ErrProviderConfig) {
			r.logger.Error("debugger is not configured", zap.Error(err))
			return current, attempt.RepairDebug, err
		}
		r.logger.Warn("debugger failed, retrying current script", zap.Error(err))
		return current, attempt.RepairDebug, nil
	}
	return o.cleaner.Clean(fixed), attempt.RepairDebug, nil
}
