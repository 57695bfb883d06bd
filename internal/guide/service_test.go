package guide

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adedotun/medprep/internal/llm"
)

func testGateway(mock *llm.MockProvider) *llm.Gateway {
	return llm.NewGatewayFor(mock, llm.RetryConfig{
		MaxAttempts: 1,
		InitialWait: time.Millisecond,
		MaxWait:     time.Millisecond,
		Multiplier:  1,
	})
}

func TestGenerateStreamsChunks(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Chunks: []string{"## Asthma\n", "Chronic airway disease."}})
	svc := New(testGateway(mock))

	var b strings.Builder
	err := svc.Generate(context.Background(), "Asthma", func(chunk string) {
		b.WriteString(chunk)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.String() != "## Asthma\nChronic airway disease." {
		t.Fatalf("unexpected content: %q", b.String())
	}
}

func TestGenerateMidStreamFailureAppendsNotice(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{
		Chunks: []string{"## Asthma\npartial"},
		Err:    &llm.ErrProviderUnavailable{Err: errors.New("cut")},
	})
	svc := New(testGateway(mock))

	var b strings.Builder
	err := svc.Generate(context.Background(), "Asthma", func(chunk string) {
		b.WriteString(chunk)
	})
	if err != nil {
		t.Fatalf("mid-stream failure must not surface as an error: %v", err)
	}

	notice := "\n\n---\n\n**An error occurred while generating the study guide for \"Asthma\". Please try again.**"
	if !strings.HasSuffix(b.String(), notice) {
		t.Fatalf("missing inline notice, got: %q", b.String())
	}
	if !strings.HasPrefix(b.String(), "## Asthma\npartial") {
		t.Fatalf("partial content lost: %q", b.String())
	}
	if strings.Count(b.String(), "An error occurred") != 1 {
		t.Fatalf("notice must appear exactly once: %q", b.String())
	}
}

func TestGenerateOpenFailureReturnsError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddStream(llm.MockStream{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	svc := New(testGateway(mock))

	called := false
	err := svc.Generate(context.Background(), "Asthma", func(string) { called = true })
	if err == nil {
		t.Fatal("failure before any chunk must return an error")
	}
	if called {
		t.Fatal("no chunks should be delivered")
	}
}

func TestFindVideos(t *testing.T) {
	videos := []Video{
		{VideoID: "abc123", Title: "Asthma Explained", Description: "Overview of asthma."},
	}
	raw, _ := json.Marshal(videos)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	svc := New(testGateway(mock))

	got := svc.FindVideos(context.Background(), "Asthma")
	if len(got) != 1 || got[0].VideoID != "abc123" {
		t.Fatalf("unexpected videos: %+v", got)
	}
	if mock.Calls[0].Schema != videoListSchema {
		t.Fatal("video schema not attached")
	}
}

func TestFindVideosFailureYieldsEmpty(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	svc := New(testGateway(mock))

	if got := svc.FindVideos(context.Background(), "Asthma"); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestDefine(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Difficulty breathing, often positional.")},
	)
	svc := New(testGateway(mock))

	if got := svc.Define(context.Background(), "dyspnea"); got != "Difficulty breathing, often positional." {
		t.Fatalf("unexpected definition: %q", got)
	}
}

func TestDefineFailureFallback(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	svc := New(testGateway(mock))

	got := svc.Define(context.Background(), "dyspnea")
	if !strings.Contains(got, "dyspnea") || !strings.Contains(got, "Please try again") {
		t.Fatalf("unexpected fallback: %q", got)
	}
}
