package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockStream is a canned streaming response: chunks delivered in order,
// then Err (if any) after the last chunk.
type MockStream struct {
	Chunks []string
	Err    error
}

// MockSpeech is a canned speech synthesis response.
type MockSpeech struct {
	Audio []byte
	Err   error
}

// MockProvider is a deterministic backend for testing, implementing all
// four request kinds. Canned responses are consumed in FIFO order per kind
// and every request is recorded.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	streams   []MockStream
	chats     []MockResponse
	speech    []MockSpeech

	Calls       []Request
	StreamCalls []Request
	ChatSends   []string
	SpeechTexts []string
}

var (
	_ Provider    = (*MockProvider)(nil)
	_ Streamer    = (*MockProvider)(nil)
	_ Chatter     = (*MockProvider)(nil)
	_ Synthesizer = (*MockProvider)(nil)
)

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateStream delivers the next canned stream's chunks in order, then
// returns its error, if any.
func (m *MockProvider) GenerateStream(_ context.Context, req Request, onChunk func(string)) error {
	m.mu.Lock()
	m.StreamCalls = append(m.StreamCalls, req)
	if len(m.streams) == 0 {
		m.mu.Unlock()
		return &ErrProviderUnavailable{Err: nil}
	}
	stream := m.streams[0]
	m.streams = m.streams[1:]
	m.mu.Unlock()

	for _, chunk := range stream.Chunks {
		onChunk(chunk)
	}
	return stream.Err
}

// NewChat returns a chat that replies from the canned chat queue.
func (m *MockProvider) NewChat(_ context.Context, _ string) (Chat, error) {
	return &mockChat{provider: m}, nil
}

// Synthesize returns the next canned speech sample.
func (m *MockProvider) Synthesize(_ context.Context, text string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpeechTexts = append(m.SpeechTexts, text)

	if len(m.speech) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	s := m.speech[0]
	m.speech = m.speech[1:]
	return s.Audio, s.Err
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned Generate response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddStream appends a canned streaming response.
func (m *MockProvider) AddStream(stream MockStream) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.streams = append(m.streams, stream)
}

// AddChatReply appends a canned chat turn reply.
func (m *MockProvider) AddChatReply(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, resp)
}

// AddSpeech appends a canned speech synthesis response.
func (m *MockProvider) AddSpeech(s MockSpeech) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speech = append(m.speech, s)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type mockChat struct {
	provider *MockProvider
}

func (c *mockChat) Send(_ context.Context, text string) (string, error) {
	m := c.provider
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatSends = append(m.ChatSends, text)

	if len(m.chats) == 0 {
		return "", &ErrProviderUnavailable{Err: nil}
	}

	resp := m.chats[0]
	m.chats = m.chats[1:]

	if resp.Err != nil {
		return "", resp.Err
	}
	return string(resp.Content), nil
}
