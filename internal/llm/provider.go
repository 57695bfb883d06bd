package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for single-shot LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Streamer generates text incrementally. Implementations invoke onChunk
// with each text fragment in arrival order for the lifetime of the call.
// A returned error means the stream could not be opened or broke mid-way;
// chunks already delivered remain delivered.
type Streamer interface {
	GenerateStream(ctx context.Context, req Request, onChunk func(string)) error
}

// Chat is a stateful multi-turn conversation handle. A Chat is not safe
// for concurrent sends; callers serialize turns.
type Chat interface {
	// Send appends the user message to the conversation and returns the
	// model's reply text. Errors propagate to the caller.
	Send(ctx context.Context, text string) (string, error)
}

// Chatter opens stateful multi-turn conversations.
type Chatter interface {
	NewChat(ctx context.Context, systemInstruction string) (Chat, error)
}

// Synthesizer converts text to speech. The returned bytes are raw 16-bit
// little-endian mono PCM at SpeechSampleRate.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// SpeechSampleRate is the PCM sample rate of synthesized speech.
const SpeechSampleRate = 24000

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// (the common case in medprep), this contains one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is raw text as json.RawMessage.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as tool name for Anthropic,
	// schema name for OpenAI). Kebab-case, e.g. "quiz-question-batch".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID,
// passing unknown names through unchanged.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
