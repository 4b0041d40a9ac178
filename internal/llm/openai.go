package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/omega/animator/internal/biz/provider"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

// chatProvider drives the chat completions API shared by OpenAI and Azure
// OpenAI.
type chatProvider struct {
	cfg    *provider.Config
	client openai.Client
}

func (p *chatProvider) Kind() provider.Kind {
	return p.cfg.Kind
}

func (p *chatProvider) Name() string {
	return p.cfg.Name
}

func (p *chatProvider) Complete(ctx context.Context, req Request) (string, error) {
	req = applyOptions(req, p.cfg.Options)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.cfg.ModelName()),
		Messages:    buildChatMessages(req),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", p.cfg.Kind, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", emptyCompletion(p.cfg)
	}
	return resp.Choices[0].Message.Content, nil
}

func buildChatMessages(req Request) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	return append(messages, openai.UserMessage(req.Prompt))
}

// NewAzureOpenAIProvider targets an Azure deployment; the deployment name is
// sent as the model.
func NewAzureOpenAIProvider(cfg *provider.Config, httpClient *http.Client) Provider {
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = provider.DefaultAzureAPIVersion
	}
	return &chatProvider{
		cfg: cfg,
		client: openai.NewClient(
			azure.WithEndpoint(cfg.Endpoint, apiVersion),
			azure.WithAPIKey(cfg.APIKey),
			option.WithHTTPClient(httpClient),
		),
	}
}

func NewOpenAIProvider(cfg *provider.Config, httpClient *http.Client) Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &chatProvider{cfg: cfg, client: openai.NewClient(opts...)}
}
