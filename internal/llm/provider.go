package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/omega/animator/internal/biz/provider"
	"github.com/spf13/cast"
)

// ErrProviderConfig marks configuration problems (unknown provider, missing
// credentials). Callers must not retry them.
var ErrProviderConfig = errors.New("ai provider configuration error")

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProviderConfig, fmt.Sprintf(format, args...))
}

// Request is a single-turn completion.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Provider is one configured AI backend.
type Provider interface {
	Kind() provider.Kind
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Factory builds a Provider from a catalog entry.
type Factory interface {
	New(cfg *provider.Config) (Provider, error)
}

// CallTimeout bounds a single completion request.
const CallTimeout = 5 * time.Minute

type DefaultFactory struct {
	httpClient *http.Client
}

func NewDefaultFactory() Factory {
	return &DefaultFactory{httpClient: &http.Client{Timeout: CallTimeout}}
}

func NewFactoryWithClient(client *http.Client) Factory {
	return &DefaultFactory{httpClient: client}
}

func (f *DefaultFactory) New(cfg *provider.Config) (Provider, error) {
	if !cfg.HasCredentials() {
		return nil, configError("provider %q (%s) is missing credentials", cfg.Name, cfg.Kind)
	}
	switch cfg.Kind {
	case provider.KindGemini:
		return NewGeminiProvider(cfg, f.httpClient), nil
	case provider.KindAzureOpenAI:
		return NewAzureOpenAIProvider(cfg, f.httpClient), nil
	case provider.KindOpenAI:
		return NewOpenAIProvider(cfg, f.httpClient), nil
	case provider.KindAnthropic:
		return NewAnthropicProvider(cfg, f.httpClient), nil
	}
	return nil, configError("unknown provider kind %q", cfg.Kind)
}

// applyOptions lets per-provider catalog options override request defaults.
func applyOptions(req Request, options map[string]any) Request {
	if v, ok := options["temperature"]; ok {
		if t, err := cast.ToFloat64E(v); err == nil {
			req.Temperature = t
		}
	}
	if v, ok := options["max_tokens"]; ok {
		if n, err := cast.ToIntE(v); err == nil && n > 0 {
			req.MaxTokens = n
		}
	}
	return req
}

func emptyCompletion(cfg *provider.Config) error {
	return fmt.Errorf("%s provider %q returned an empty completion", cfg.Kind, cfg.Name)
}
