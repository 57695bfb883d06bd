package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/adedotun/medprep/internal/llm"
)

// FeedbackFallback is shown when per-option feedback cannot be generated.
const FeedbackFallback = "Could not generate feedback for this option."

const (
	batchMaxTokens    = 8192
	feedbackMaxTokens = 100
)

// Service generates quiz questions and per-option feedback.
type Service struct {
	provider llm.Provider
}

// New creates a Service on the given provider.
func New(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// GenerateBatch produces count questions in a single structured call.
// Any failure — transport, schema, or a question violating the
// index-in-range invariant — yields an empty slice; the caller shows
// its own error state.
func (s *Service) GenerateBatch(ctx context.Context, level string, count int) []Question {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildBatchPrompt(count, level)},
		},
		Schema:    BatchSchema,
		MaxTokens: batchMaxTokens,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: quiz generation failed: %v\n", err)
		return nil
	}

	var questions []Question
	if err := json.Unmarshal(resp.Content, &questions); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to parse quiz batch: %v\n", err)
		return nil
	}

	for i, q := range questions {
		if !q.valid() {
			fmt.Fprintf(os.Stderr, "warning: question %d violates answer-index bounds, discarding batch\n", i)
			return nil
		}
	}

	return questions
}

// IncorrectFeedback explains in one sentence why a chosen option is
// wrong. It never fails: any error yields FeedbackFallback.
func (s *Service) IncorrectFeedback(ctx context.Context, question, incorrectAnswer string) string {
	ctx = llm.WithPurpose(ctx, "quiz-feedback")

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFeedbackPrompt(question, incorrectAnswer)},
		},
		MaxTokens: feedbackMaxTokens,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: feedback generation failed: %v\n", err)
		return FeedbackFallback
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return FeedbackFallback
	}
	return text
}
