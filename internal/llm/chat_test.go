package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestHistoryChat_CarriesHistory(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("I have a headache.")},
		MockResponse{Content: json.RawMessage("Since this morning.")},
	)
	chat := NewHistoryChat(mock, "You are a patient.", 256)

	if _, err := chat.Send(context.Background(), "What brings you in?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := chat.Send(context.Background(), "Since when?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The second request must carry the full conversation so far:
	// user, assistant, user.
	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages in second request, got %d", len(second.Messages))
	}
	if second.Messages[0].Role != RoleUser || second.Messages[1].Role != RoleAssistant || second.Messages[2].Role != RoleUser {
		t.Fatalf("unexpected role sequence: %v, %v, %v",
			second.Messages[0].Role, second.Messages[1].Role, second.Messages[2].Role)
	}
	if second.Messages[1].Content != "I have a headache." {
		t.Fatalf("assistant turn not carried: %q", second.Messages[1].Content)
	}
	if second.System != "You are a patient." {
		t.Fatalf("system instruction not carried: %q", second.System)
	}
}

func TestHistoryChat_FailedTurnNotDuplicated(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage("Better now.")},
	)
	chat := NewHistoryChat(mock, "", 256)

	if _, err := chat.Send(context.Background(), "How are you?"); err == nil {
		t.Fatal("expected error")
	}

	reply, err := chat.Send(context.Background(), "How are you?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Better now." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	// The retried request must carry exactly one user turn, not two.
	retried := mock.Calls[1]
	if len(retried.Messages) != 1 {
		t.Fatalf("expected 1 message after failed turn, got %d", len(retried.Messages))
	}
}
