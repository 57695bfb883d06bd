package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/adedotun/medprep/internal/llm"
)

func validBatchJSON(t *testing.T, questions []Question) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(questions)
	if err != nil {
		t.Fatalf("marshal batch: %v", err)
	}
	return raw
}

func sampleQuestion() Question {
	return Question{
		Question:           "A 55-year-old man presents with crushing chest pain radiating to the left arm. What is the most appropriate next step?",
		Options:            []string{"ECG", "Chest X-ray", "D-dimer", "Echocardiogram"},
		CorrectAnswerIndex: 0,
		Explanation:        "An ECG is the first investigation for suspected acute coronary syndrome.",
		Topics:             []string{"Cardiology", "Acute Coronary Syndrome"},
	}
}

func TestGenerateBatch(t *testing.T) {
	batch := []Question{sampleQuestion(), sampleQuestion()}
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validBatchJSON(t, batch)},
	)
	svc := New(mock)

	got := svc.GenerateBatch(context.Background(), "intermediate", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	if got[0].CorrectAnswerIndex != 0 {
		t.Fatalf("unexpected answer index: %d", got[0].CorrectAnswerIndex)
	}

	req := mock.Calls[0]
	if req.Schema != BatchSchema {
		t.Fatal("batch schema not attached to request")
	}
	if !strings.Contains(req.Messages[0].Content, "Generate 2 unique") {
		t.Fatalf("count not in prompt: %q", req.Messages[0].Content)
	}
	if !strings.Contains(req.Messages[0].Content, "Difficulty: intermediate") {
		t.Fatalf("level not in prompt: %q", req.Messages[0].Content)
	}
}

func TestGenerateBatchFailureYieldsEmpty(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
	)
	svc := New(mock)

	if got := svc.GenerateBatch(context.Background(), "beginner", 5); len(got) != 0 {
		t.Fatalf("expected empty batch on failure, got %d", len(got))
	}
}

func TestGenerateBatchAnswerIndexOutOfRange(t *testing.T) {
	bad := sampleQuestion()
	bad.CorrectAnswerIndex = 4 // one past the last option
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validBatchJSON(t, []Question{sampleQuestion(), bad})},
	)
	svc := New(mock)

	if got := svc.GenerateBatch(context.Background(), "advanced", 2); len(got) != 0 {
		t.Fatalf("out-of-range index must discard the batch, got %d", len(got))
	}
}

func TestGenerateBatchOptionCountBounds(t *testing.T) {
	bad := sampleQuestion()
	bad.Options = []string{"A", "B", "C"}
	bad.CorrectAnswerIndex = 1
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validBatchJSON(t, []Question{bad})},
	)
	svc := New(mock)

	if got := svc.GenerateBatch(context.Background(), "beginner", 1); len(got) != 0 {
		t.Fatalf("3 options must discard the batch, got %d", len(got))
	}
}

func TestIncorrectFeedback(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("A D-dimer is used to rule out pulmonary embolism, not to diagnose ACS.")},
	)
	svc := New(mock)

	got := svc.IncorrectFeedback(context.Background(), "Chest pain question", "D-dimer")
	if got != "A D-dimer is used to rule out pulmonary embolism, not to diagnose ACS." {
		t.Fatalf("unexpected feedback: %q", got)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Fatal("feedback is free text, no schema expected")
	}
	if req.MaxTokens != feedbackMaxTokens {
		t.Fatalf("expected max tokens %d, got %d", feedbackMaxTokens, req.MaxTokens)
	}
}

func TestIncorrectFeedbackFallback(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
	)
	svc := New(mock)

	if got := svc.IncorrectFeedback(context.Background(), "q", "opt"); got != FeedbackFallback {
		t.Fatalf("expected fallback, got %q", got)
	}
}
