package llm

import "fmt"

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterModels maps friendly names to OpenRouter model IDs.
var openRouterModels = map[string]string{
	"gemini-flash":  "google/gemini-2.5-flash",
	"claude-sonnet": "anthropic/claude-sonnet-4",
	"gpt-4o":        "openai/gpt-4o",
	"llama":         "meta-llama/llama-3.3-70b-instruct",
}

// NewOpenRouterProvider creates a provider backed by OpenRouter's
// OpenAI-compatible API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	return newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   resolveModel(cfg.Model, openRouterModels),
		BaseURL: openRouterBaseURL,
	})
}
