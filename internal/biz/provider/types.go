package provider

import (
	"fmt"
	"strings"

	domainError "github.com/omega/animator/internal/domain/error"
)

// Kind identifies an AI backend implementation.
type Kind string

const (
	KindGemini      Kind = "gemini"
	KindAzureOpenAI Kind = "azure_openai"
	KindOpenAI      Kind = "openai"
	KindAnthropic   Kind = "anthropic"
)

// Kinds lists every supported backend.
var Kinds = []Kind{KindGemini, KindAzureOpenAI, KindOpenAI, KindAnthropic}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domainError.ErrUnknownProvider, s)
}

func (k Kind) String() string {
	return string(k)
}

// DefaultModel is used when a provider entry leaves the model empty.
func (k Kind) DefaultModel() string {
	switch k {
	case KindGemini:
		return "gemini-2.0-flash"
	case KindOpenAI:
		return "gpt-4o"
	case KindAnthropic:
		return "claude-sonnet-4-5"
	}
	return ""
}

const DefaultPriority = 10

const DefaultAzureAPIVersion = "2023-07-01-preview"
