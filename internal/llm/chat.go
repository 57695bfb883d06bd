package llm

import (
	"context"
	"strings"
)

// historyChat implements Chat on top of any Provider by carrying the
// conversation history client-side. Providers without a native session
// API (Anthropic, OpenAI) use this; Gemini uses its Chats service.
type historyChat struct {
	provider  Provider
	system    string
	maxTokens int
	history   []Message
}

// NewHistoryChat creates a Chat that replays accumulated history on every
// turn. The underlying API is stateless; statefulness lives in the handle.
func NewHistoryChat(p Provider, systemInstruction string, maxTokens int) Chat {
	return &historyChat{
		provider:  p,
		system:    systemInstruction,
		maxTokens: maxTokens,
	}
}

func (c *historyChat) Send(ctx context.Context, text string) (string, error) {
	c.history = append(c.history, Message{Role: RoleUser, Content: text})

	resp, err := c.provider.Generate(ctx, Request{
		System:    c.system,
		Messages:  c.history,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		// Drop the unanswered turn so a retry does not duplicate it.
		c.history = c.history[:len(c.history)-1]
		return "", err
	}

	reply := strings.TrimSpace(string(resp.Content))
	c.history = append(c.history, Message{Role: RoleAssistant, Content: reply})
	return reply, nil
}
