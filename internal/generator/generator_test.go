package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/omega/animator/internal/biz/provider"
	"github.com/omega/animator/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingProvider struct {
	kind     provider.Kind
	name     string
	reply    string
	err      error
	requests []llm.Request
}

func (p *recordingProvider) Kind() provider.Kind { return p.kind }
func (p *recordingProvider) Name() string        { return p.name }
func (p *recordingProvider) Complete(_ context.Context, req llm.Request) (string, error) {
	p.requests = append(p.requests, req)
	return p.reply, p.err
}

type fakeResolver struct {
	byKind    map[provider.Kind]llm.Provider
	preferred llm.Provider
	resolved  []provider.Kind
}

func (f *fakeResolver) Resolve(_ context.Context, kind provider.Kind) (llm.Provider, error) {
	f.resolved = append(f.resolved, kind)
	if p, ok := f.byKind[kind]; ok {
		return p, nil
	}
	return nil, errors.Join(llm.ErrProviderConfig, errors.New("no provider"))
}

func (f *fakeResolver) Preferred(context.Context) (llm.Provider, error) {
	if f.preferred == nil {
		return nil, llm.ErrProviderConfig
	}
	return f.preferred, nil
}

func TestGenerateUsesSelectedProvider(t *testing.T) {
	gemini := &recordingProvider{kind: provider.KindGemini, name: "gemini", reply: "```python\nclass A(Scene): pass\n```"}
	r := &fakeResolver{byKind: map[provider.Kind]llm.Provider{provider.KindGemini: gemini}}
	g := &Generator{resolver: r, logger: zap.NewNop()}

	text, name, err := g.Generate(context.Background(), "a spinning square", provider.KindGemini)
	require.NoError(t, err)

	assert.Equal(t, "```python\nclass A(Scene): pass\n```", text)
	assert.Equal(t, "gemini", name)
	require.Len(t, gemini.requests, 1)
	req := gemini.requests[0]
	assert.Contains(t, req.Prompt, `"a spinning square"`)
	assert.Equal(t, generateSystemPrompt, req.System)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Equal(t, 4000, req.MaxTokens)
}

func TestGenerateMissingProviderIsConfigError(t *testing.T) {
	g := &Generator{resolver: &fakeResolver{}, logger: zap.NewNop()}

	_, _, err := g.Generate(context.Background(), "circle", provider.KindAnthropic)
	assert.ErrorIs(t, err, llm.ErrProviderConfig)
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	r := &fakeResolver{}
	g := &Generator{resolver: r, logger: zap.NewNop()}

	_, _, err := g.Generate(context.Background(), "  ", provider.KindGemini)
	assert.Error(t, err)
	assert.Empty(t, r.resolved)
}

func TestDebugDefaultsToPreferred(t *testing.T) {
	claude := &recordingProvider{kind: provider.KindAnthropic, name: "claude", reply: "fixed"}
	d := &Debugger{resolver: &fakeResolver{preferred: claude}, logger: zap.NewNop()}

	out, err := d.Debug(context.Background(), "class A(Scene): pass", "NameError: x")
	require.NoError(t, err)
	assert.Equal(t, "fixed", out)

	req := claude.requests[0]
	assert.Contains(t, req.Prompt, "NameError: x")
	assert.Contains(t, req.Prompt, "class A(Scene): pass")
	assert.Equal(t, debugSystemPrompt, req.System)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
}

func TestDebugPinnedKind(t *testing.T) {
	azure := &recordingProvider{kind: provider.KindAzureOpenAI, name: "azure", reply: "fixed"}
	r := &fakeResolver{byKind: map[provider.Kind]llm.Provider{provider.KindAzureOpenAI: azure}}
	d := &Debugger{resolver: r, kind: "Azure_OpenAI", logger: zap.NewNop()}

	_, err := d.Debug(context.Background(), "s", "e")
	require.NoError(t, err)
	assert.Equal(t, []provider.Kind{provider.KindAzureOpenAI}, r.resolved)

	d.kind = "cohere"
	_, err = d.Debug(context.Background(), "s", "e")
	assert.ErrorIs(t, err, llm.ErrProviderConfig)
}

func TestDebugCallFailureIsNotConfigError(t *testing.T) {
	broken := &recordingProvider{name: "gemini", err: errors.New("503")}
	d := &Debugger{resolver: &fakeResolver{preferred: broken}, logger: zap.NewNop()}

	_, err := d.Debug(context.Background(), "s", "e")
	assert.ErrorContains(t, err, "failed to debug script")
	assert.NotErrorIs(t, err, llm.ErrProviderConfig)
}
