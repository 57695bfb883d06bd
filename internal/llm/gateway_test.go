package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func gatewayRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 2,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestGateway_GenerateDelegates(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	g := NewGatewayFor(mock, gatewayRetryConfig())

	resp, err := g.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
}

func TestGateway_GenerateRetriesTransient(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	g := NewGatewayFor(mock, gatewayRetryConfig())

	resp, err := g.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestGateway_StreamChunksInOrder(t *testing.T) {
	mock := NewMockProvider()
	mock.AddStream(MockStream{Chunks: []string{"# Asthma", "\n\nChronic ", "airway disease."}})
	g := NewGatewayFor(mock, gatewayRetryConfig())

	var b strings.Builder
	err := g.GenerateStream(context.Background(), Request{}, func(chunk string) {
		b.WriteString(chunk)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "# Asthma\n\nChronic airway disease."
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}

func TestGateway_StreamErrorAfterPartialChunks(t *testing.T) {
	mock := NewMockProvider()
	mock.AddStream(MockStream{
		Chunks: []string{"partial"},
		Err:    &ErrProviderUnavailable{Err: errors.New("cut off")},
	})
	g := NewGatewayFor(mock, gatewayRetryConfig())

	var got string
	err := g.GenerateStream(context.Background(), Request{}, func(chunk string) {
		got += chunk
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got != "partial" {
		t.Fatalf("chunks before the error should be delivered, got %q", got)
	}
	// The stream is not retried: one stream call only.
	if len(mock.StreamCalls) != 1 {
		t.Fatalf("expected 1 stream call, got %d", len(mock.StreamCalls))
	}
}

func TestGateway_ChatTurns(t *testing.T) {
	mock := NewMockProvider()
	mock.AddChatReply(MockResponse{Content: json.RawMessage("Hello, I have chest pain.")})
	mock.AddChatReply(MockResponse{Content: json.RawMessage("It started an hour ago.")})
	g := NewGatewayFor(mock, gatewayRetryConfig())

	chat, err := g.NewChat(context.Background(), "You are a patient.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := chat.Send(context.Background(), "What brings you in today?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "Hello, I have chest pain." {
		t.Fatalf("unexpected reply: %q", first)
	}

	second, err := chat.Send(context.Background(), "When did it start?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "It started an hour ago." {
		t.Fatalf("unexpected reply: %q", second)
	}

	if len(mock.ChatSends) != 2 {
		t.Fatalf("expected 2 recorded sends, got %d", len(mock.ChatSends))
	}
}

func TestGateway_ChatErrorPropagates(t *testing.T) {
	mock := NewMockProvider()
	mock.AddChatReply(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	g := NewGatewayFor(mock, gatewayRetryConfig())

	chat, err := g.NewChat(context.Background(), "You are a patient.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = chat.Send(context.Background(), "Hello")
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %v", err)
	}
}

func TestGateway_Synthesize(t *testing.T) {
	mock := NewMockProvider()
	mock.AddSpeech(MockSpeech{Audio: []byte{0x01, 0x02, 0x03, 0x04}})
	g := NewGatewayFor(mock, gatewayRetryConfig())

	if !g.CanSynthesize() {
		t.Fatal("mock should support synthesis")
	}

	audio, err := g.Synthesize(context.Background(), "dyspnea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(audio) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(audio))
	}
	if len(mock.SpeechTexts) != 1 || mock.SpeechTexts[0] != "dyspnea" {
		t.Fatalf("synthesis text not recorded: %v", mock.SpeechTexts)
	}
}

// generateOnly wraps a MockProvider exposing only Generate, modelling a
// backend with no stream/chat/speech support.
type generateOnly struct {
	inner *MockProvider
}

func (g *generateOnly) Generate(ctx context.Context, req Request) (*Response, error) {
	return g.inner.Generate(ctx, req)
}

func (g *generateOnly) ModelID() string { return g.inner.ModelID() }

func TestGateway_UnsupportedCapabilities(t *testing.T) {
	g := NewGatewayFor(&generateOnly{inner: NewMockProvider()}, gatewayRetryConfig())

	if g.CanSynthesize() {
		t.Fatal("generateOnly should not support synthesis")
	}
	if err := g.GenerateStream(context.Background(), Request{}, func(string) {}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got: %v", err)
	}
	if _, err := g.NewChat(context.Background(), ""); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got: %v", err)
	}
	if _, err := g.Synthesize(context.Background(), "x"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got: %v", err)
	}
}
