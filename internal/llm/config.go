package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in configuration.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// defaultChatMaxTokens bounds each turn of a history-carrying chat.
const defaultChatMaxTokens = 2048

// Config holds LLM provider configuration.
type Config struct {
	// Provider selects the backend: gemini, anthropic, openai, openrouter.
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig

	Retry RetryConfig
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string
	// SpeechModel serves Synthesize; empty uses the TTS default.
	SpeechModel string
	// Voice is the prebuilt voice name for speech synthesis.
	Voice string
}

// AnthropicConfig configures the Anthropic backend.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig configures the OpenAI backend. BaseURL supports
// OpenAI-compatible APIs.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig configures the OpenRouter backend.
type OpenRouterConfig struct {
	APIKey string
	Model  string
}

// RetryConfig controls the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the baseline configuration. Gemini is the default
// provider: it is the only backend serving all four request kinds,
// speech synthesis included.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv reads configuration from MEDPREP_* environment variables,
// falling back to the bare provider key names for discovery.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Gemini.APIKey = envFirst("MEDPREP_GEMINI_API_KEY", "GEMINI_API_KEY")
	cfg.Anthropic.APIKey = envFirst("MEDPREP_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	cfg.OpenAI.APIKey = envFirst("MEDPREP_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.OpenRouter.APIKey = envFirst("MEDPREP_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	if v := os.Getenv("MEDPREP_LLM_PROVIDER"); v != "" {
		cfg.Provider = v
	} else {
		cfg.Provider = discoverProvider(cfg)
	}

	if v := os.Getenv("MEDPREP_LLM_MODEL"); v != "" {
		cfg.Gemini.Model = v
		cfg.Anthropic.Model = v
		cfg.OpenAI.Model = v
		cfg.OpenRouter.Model = v
	}
	if v := os.Getenv("MEDPREP_SPEECH_MODEL"); v != "" {
		cfg.Gemini.SpeechModel = v
	}
	if v := os.Getenv("MEDPREP_SPEECH_VOICE"); v != "" {
		cfg.Gemini.Voice = v
	}

	return cfg
}

// discoverProvider picks the first backend with a key present, in the
// order of capability coverage.
func discoverProvider(cfg Config) string {
	switch {
	case cfg.Gemini.APIKey != "":
		return ProviderGemini
	case cfg.Anthropic.APIKey != "":
		return ProviderAnthropic
	case cfg.OpenAI.APIKey != "":
		return ProviderOpenAI
	case cfg.OpenRouter.APIKey != "":
		return ProviderOpenRouter
	default:
		return ProviderGemini
	}
}

// Validate checks that the selected provider is usable.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini provider selected but no API key set (MEDPREP_GEMINI_API_KEY or GEMINI_API_KEY)")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("anthropic provider selected but no API key set (MEDPREP_ANTHROPIC_API_KEY or ANTHROPIC_API_KEY)")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai provider selected but no API key set (MEDPREP_OPENAI_API_KEY or OPENAI_API_KEY)")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("openrouter provider selected but no API key set (MEDPREP_OPENROUTER_API_KEY or OPENROUTER_API_KEY)")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	return nil
}

func envFirst(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
