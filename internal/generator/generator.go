package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/wire"
	"github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/llm"
	"go.uber.org/zap"
)

var Provider = wire.NewSet(NewGenerator, NewDebugger)

// Resolver selects a configured AI backend.
type Resolver interface {
	Resolve(ctx context.Context, kind provider.Kind) (llm.Provider, error)
	Preferred(ctx context.Context) (llm.Provider, error)
}

// Generator turns a natural-language description into a raw script.
type Generator struct {
	resolver Resolver
	logger   *zap.Logger
}

func NewGenerator(resolver *llm.Router, logger *zap.Logger) *Generator {
	return &Generator{resolver: resolver, logger: logger.Named("generator")}
}

// Generate returns the unsanitized completion and the name of the provider
// that produced it.
func (g *Generator) Generate(ctx context.Context, description string, kind provider.Kind) (string, string, error) {
	if strings.TrimSpace(description) == "" {
		return "", "", fmt.Errorf("generate: empty prompt")
	}
	p, err := g.resolver.Resolve(ctx, kind)
	if err != nil {
		return "", "", err
	}

	g.logger.Info("generating script", zap.String("provider", p.Name()), zap.String("kind", kind.String()))
	text, err := p.Complete(ctx, llm.Request{
		System:      generateSystemPrompt,
		Prompt:      generatePrompt(description),
		Temperature: generateTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate script with %s: %w", p.Name(), err)
	}
	return text, p.Name(), nil
}

type DebuggerConfig struct {
	// Kind pins the debug backend; empty means the preferred active provider.
	Kind string
}

// Debugger asks an AI backend to repair a failing script.
type Debugger struct {
	resolver Resolver
	kind     string
	logger   *zap.Logger
}

func NewDebugger(cfg DebuggerConfig, resolver *llm.Router, logger *zap.Logger) *Debugger {
	return &Debugger{resolver: resolver, kind: cfg.Kind, logger: logger.Named("debugger")}
}

func (d *Debugger) pick(ctx context.Context) (llm.Provider, error) {
	if d.kind == "" {
		return d.resolver.Preferred(ctx)
	}
	kind, err := provider.ParseKind(d.kind)
	if err != nil {
		return nil, fmt.Errorf("%w: debug provider: %v", llm.ErrProviderConfig, err)
	}
	return d.resolver.Resolve(ctx, kind)
}

// Debug returns the unsanitized corrected script.
func (d *Debugger) Debug(ctx context.Context, script, errText string) (string, error) {
	p, err := d.pick(ctx)
	if err != nil {
		return "", err
	}

	d.logger.Info("debugging script", zap.String("provider", p.Name()))
	text, err := p.Complete(ctx, llm.Request{
		System:      debugSystemPrompt,
		Prompt:      debugPrompt(script, errText),
		Temperature: debugTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		d.logger.Error("debug call failed", zap.String("provider", p.Name()), zap.Error(err))
		return "", fmt.Errorf("failed to debug script: %w", err)
	}
	return text, nil
}
