package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/omega/animator/internal/biz/provider"
	"google.golang.org/genai"
)

type GeminiProvider struct {
	cfg        *provider.Config
	httpClient *http.Client
}

func NewGeminiProvider(cfg *provider.Config, httpClient *http.Client) Provider {
	return &GeminiProvider{cfg: cfg, httpClient: httpClient}
}

func (p *GeminiProvider) Kind() provider.Kind {
	return provider.KindGemini
}

func (p *GeminiProvider) Name() string {
	return p.cfg.Name
}

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	req = applyOptions(req, p.cfg.Options)

	clientCfg := &genai.ClientConfig{
		APIKey:     p.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	resp, err := client.Models.GenerateContent(ctx, p.cfg.ModelName(), genai.Text(req.Prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := geminiText(resp)
	if text == "" {
		return "", emptyCompletion(p.cfg)
	}
	return text, nil
}

// geminiText joins the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
