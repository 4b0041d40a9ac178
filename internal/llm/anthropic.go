package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/omega/animator/internal/biz/provider"
)

const anthropicDefaultMaxTokens = 4096

type AnthropicProvider struct {
	cfg    *provider.Config
	client anthropic.Client
}

func NewAnthropicProvider(cfg *provider.Config, httpClient *http.Client) Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &AnthropicProvider{cfg: cfg, client: anthropic.NewClient(opts...)}
}

func (p *AnthropicProvider) Kind() provider.Kind {
	return provider.KindAnthropic
}

func (p *AnthropicProvider) Name() string {
	return p.cfg.Name
}

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	req = applyOptions(req, p.cfg.Options)

	maxTokens := int64(anthropicDefaultMaxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.cfg.ModelName()),
		MaxTokens:   maxTokens,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
		Temperature: anthropic.Float(req.Temperature),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return "", emptyCompletion(p.cfg)
	}
	return sb.String(), nil
}
