package wirefmt

import "strings"

// Provider identifies a target request format family.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// DetectProvider maps a model name to the request format it needs,
// using case-insensitive substring matching. Unknown and empty names
// fall back to the OpenAI-compatible format.
func DetectProvider(model string) Provider {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "gemini"):
		return ProviderGemini
	case strings.Contains(m, "claude"):
		return ProviderClaude
	default:
		return ProviderOpenAI
	}
}
