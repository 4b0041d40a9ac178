package provider

import (
	"testing"

	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Azure_OpenAI ")
	require.NoError(t, err)
	assert.Equal(t, KindAzureOpenAI, k)

	_, err = ParseKind("llama")
	assert.ErrorIs(t, err, domainError.ErrUnknownProvider)
}

func TestHasCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"gemini with key", Config{Kind: KindGemini, APIKey: "k"}, true},
		{"gemini without key", Config{Kind: KindGemini}, false},
		{"azure missing endpoint", Config{Kind: KindAzureOpenAI, APIKey: "k", Deployment: "d"}, false},
		{"azure missing deployment", Config{Kind: KindAzureOpenAI, APIKey: "k", Endpoint: "https://e"}, false},
		{"azure complete", Config{Kind: KindAzureOpenAI, APIKey: "k", Endpoint: "https://e", Deployment: "d"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.HasCredentials())
		})
	}
}

func TestModelName(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", (&Config{Kind: KindGemini}).ModelName())
	assert.Equal(t, "gemini-2.5-pro", (&Config{Kind: KindGemini, Model: "gemini-2.5-pro"}).ModelName())
	assert.Equal(t, "my-deploy", (&Config{Kind: KindAzureOpenAI, Model: "gpt-4o", Deployment: "my-deploy"}).ModelName())
}
