package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/omega/animator/internal/biz/attempt"
	"github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/biz/script"
	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/omega/animator/internal/orchestrator"
	"github.com/omega/animator/internal/sanitizer"
	"go.uber.org/zap"
)

// DefaultProvider is used when a generate request names no provider.
const DefaultProvider = provider.KindGemini

// IScriptService generates, executes and looks up scripts.
type IScriptService interface {
	Generate(ctx context.Context, in GenerateInput) (*script.Script, error)
	Execute(ctx context.Context, id string) (*script.Script, error)
	Get(ctx context.Context, id string) (*script.Script, error)
	List(ctx context.Context, filter script.ListFilter, offset, limit int) ([]*script.Script, int64, error)
	Attempts(ctx context.Context, id string) ([]*attempt.Attempt, error)
}

type GenerateInput struct {
	Prompt   string
	Provider string
	Execute  bool
}

// ScriptGenerator produces a raw script from a description.
type ScriptGenerator interface {
	Generate(ctx context.Context, description string, kind provider.Kind) (string, string, error)
}

// ScriptRunner drives one top-level execution of a script.
type ScriptRunner interface {
	Run(ctx context.Context, scriptID, content string, tracker orchestrator.Tracker) (*orchestrator.Outcome, error)
}

type ScriptServiceConfig struct {
	// BaseURL is the public address media URLs are built from.
	BaseURL   string
	SceneBase string
}

type ScriptService struct {
	cfg         ScriptServiceConfig
	scriptRepo  script.Repo
	attemptRepo attempt.Repo
	generator   ScriptGenerator
	cleaner     orchestrator.Cleaner
	runner      ScriptRunner
	logger      *zap.Logger
}

func NewScriptService(
	cfg ScriptServiceConfig,
	scriptRepo script.Repo,
	attemptRepo attempt.Repo,
	generator ScriptGenerator,
	cleaner orchestrator.Cleaner,
	runner ScriptRunner,
	logger *zap.Logger,
) IScriptService {
	return &ScriptService{
		cfg:         cfg,
		scriptRepo:  scriptRepo,
		attemptRepo: attemptRepo,
		generator:   generator,
		cleaner:     cleaner,
		runner:      runner,
		logger:      logger.Named("script_service"),
	}
}

// Generate creates a script from a prompt and, when asked, executes it. An
// execution failure is reported on the returned script, not as an error.
func (s *ScriptService) Generate(ctx context.Context, in GenerateInput) (*script.Script, error) {
	prompt := strings.TrimSpace(in.Prompt)
	if prompt == "" {
		return nil, domainError.NewBusinessError("INVALID_PROMPT", "prompt is required", domainError.ErrInvalidInput)
	}
	kind := DefaultProvider
	if in.Provider != "" {
		var err error
		if kind, err = provider.ParseKind(in.Provider); err != nil {
			return nil, err
		}
	}

	raw, providerName, err := s.generator.Generate(ctx, prompt, kind)
	if err != nil {
		return nil, err
	}

	content := s.cleaner.Clean(raw)
	sc := script.New(prompt, content, kind.String())
	if scene, ok := sanitizer.SceneClassName(content, s.cfg.SceneBase); ok {
		sc.SceneClass = scene
	}
	if err := s.scriptRepo.Create(ctx, sc); err != nil {
		return nil, err
	}
	s.logger.Info("script generated",
		zap.String("script_id", sc.ID),
		zap.String("provider", providerName),
		zap.String("scene_class", sc.SceneClass))

	if !in.Execute {
		return sc, nil
	}
	return s.run(ctx, sc)
}

// Execute starts a new top-level execution of a stored script.
func (s *ScriptService) Execute(ctx context.Context, id string) (*script.Script, error) {
	sc, err := s.scriptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Status != script.StatusPending {
		if err := sc.Reset(); err != nil {
			return nil, err
		}
		if err := s.scriptRepo.Save(ctx, sc); err != nil {
			return nil, err
		}
	}
	return s.run(ctx, sc)
}

func (s *ScriptService) run(ctx context.Context, sc *script.Script) (*script.Script, error) {
	tracker := &scriptTracker{service: s, script: sc}
	outcome, err := s.runner.Run(ctx, sc.ID, sc.Content, tracker)

	if err == nil {
		sc.SceneClass = outcome.SceneClass
		if markErr := sc.MarkSuccessful(outcome.Script, outcome.OutputPath, s.mediaURL(outcome.OutputPath), outcome.Attempts); markErr != nil {
			return nil, markErr
		}
	} else {
		reason, attempts := err.Error(), tracker.attempts
		var exhausted *orchestrator.ExhaustedError
		if errors.As(err, &exhausted) {
			reason, attempts = exhausted.LastError, exhausted.Attempts
		}
		if markErr := sc.MarkFailed(reason, attempts); markErr != nil {
			return nil, markErr
		}
		s.logger.Warn("script execution failed",
			zap.String("script_id", sc.ID),
			zap.Int("attempts", attempts),
			zap.String("error", reason))
	}

	// The request may have been cancelled; the terminal state is still stored.
	saveCtx := context.WithoutCancel(ctx)
	ok, saveErr := s.scriptRepo.UpdateIf(saveCtx, sc.ID, script.Guard{From: script.OpenStatuses}, sc.ResultPatch())
	if saveErr != nil {
		return nil, saveErr
	}
	if !ok {
		s.logger.Warn("script was finished elsewhere, keeping stored result", zap.String("script_id", sc.ID))
	}
	return s.scriptRepo.GetByID(saveCtx, sc.ID)
}

func (s *ScriptService) mediaURL(outputPath string) string {
	if outputPath == "" {
		return ""
	}
	return fmt.Sprintf("%s/media/%s", strings.TrimRight(s.cfg.BaseURL, "/"), strings.TrimLeft(outputPath, "/"))
}

func (s *ScriptService) Get(ctx context.Context, id string) (*script.Script, error) {
	return s.scriptRepo.GetByID(ctx, id)
}

func (s *ScriptService) List(ctx context.Context, filter script.ListFilter, offset, limit int) ([]*script.Script, int64, error) {
	if status, ok := filter.Status.Get(); ok && !status.Valid() {
		return nil, 0, domainError.NewBusinessError("INVALID_STATUS", fmt.Sprintf("unknown status %q", status), domainError.ErrInvalidInput)
	}
	return s.scriptRepo.List(ctx, filter, offset, limit)
}

func (s *ScriptService) Attempts(ctx context.Context, id string) ([]*attempt.Attempt, error) {
	if _, err := s.scriptRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.attemptRepo.ListByScript(ctx, id)
}

// scriptTracker persists the progress of one run.
type scriptTracker struct {
	service  *ScriptService
	script   *script.Script
	attempts int
}

func (t *scriptTracker) StatusChanged(ctx context.Context, scriptID string, status script.Status) error {
	if err := t.script.TransitionTo(status); err != nil {
		return err
	}
	ok, err := t.service.scriptRepo.UpdateIf(ctx, scriptID, script.Guard{From: script.OpenStatuses}, &script.ScriptPatch{Status: &status})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: script %s is no longer running", domainError.ErrInvalidStatusTransition, scriptID)
	}
	return nil
}

func (t *scriptTracker) AttemptCompleted(ctx context.Context, a *attempt.Attempt) error {
	t.attempts = a.Number
	return t.service.scriptRepo.Execute(ctx, func(ctx context.Context) error {
		if err := t.service.attemptRepo.Create(ctx, a); err != nil {
			return err
		}
		n := a.Number
		return t.service.scriptRepo.Update(ctx, a.ScriptID, &script.ScriptPatch{Attempts: &n})
	})
}
