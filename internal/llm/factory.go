package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupported indicates the configured provider does not implement the
// requested capability (e.g. speech synthesis on Anthropic).
var ErrUnsupported = errors.New("capability not supported by this provider")

// Gateway bundles the four request kinds behind a single value. The Generate
// path is wrapped with retry and logging; streams, chats, and speech go to
// the base provider directly, since retrying them would replay chunks or
// duplicate turns, and they carry their own error surfaces.
type Gateway struct {
	generator   Provider
	streamer    Streamer
	chatter     Chatter
	synthesizer Synthesizer
}

// NewGateway creates a Gateway from configuration.
func NewGateway(ctx context.Context, cfg Config) (*Gateway, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return NewGatewayFor(base, cfg.Retry), nil
}

// NewGatewayFor wraps an existing provider, picking up whichever of the
// optional capabilities it implements.
func NewGatewayFor(base Provider, retry RetryConfig) *Gateway {
	g := &Gateway{
		// Wrap the Generate path: caller → retry → logging → base.
		generator: WithRetry(WithLogging(base), retry),
	}
	if s, ok := base.(Streamer); ok {
		g.streamer = s
	}
	if c, ok := base.(Chatter); ok {
		g.chatter = c
	}
	if s, ok := base.(Synthesizer); ok {
		g.synthesizer = s
	}
	return g
}

// Generate issues a single structured or free-text request.
func (g *Gateway) Generate(ctx context.Context, req Request) (*Response, error) {
	return g.generator.Generate(ctx, req)
}

// GenerateStream streams a free-text response chunk by chunk.
func (g *Gateway) GenerateStream(ctx context.Context, req Request, onChunk func(string)) error {
	if g.streamer == nil {
		return ErrUnsupported
	}
	return g.streamer.GenerateStream(ctx, req, onChunk)
}

// NewChat opens a stateful multi-turn conversation.
func (g *Gateway) NewChat(ctx context.Context, systemInstruction string) (Chat, error) {
	if g.chatter == nil {
		return nil, ErrUnsupported
	}
	return g.chatter.NewChat(ctx, systemInstruction)
}

// Synthesize converts text to raw 16-bit PCM speech samples.
func (g *Gateway) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if g.synthesizer == nil {
		return nil, ErrUnsupported
	}
	return g.synthesizer.Synthesize(ctx, text)
}

// CanSynthesize reports whether the provider supports speech synthesis.
func (g *Gateway) CanSynthesize() bool {
	return g.synthesizer != nil
}

// ModelID returns the active model identifier.
func (g *Gateway) ModelID() string {
	return g.generator.ModelID()
}
