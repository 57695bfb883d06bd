package encounter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/adedotun/medprep/internal/llm"
)

func startTestSession(t *testing.T, mock *llm.MockProvider) *Session {
	t.Helper()
	mock.AddChatReply(llm.MockResponse{
		Content: json.RawMessage("I'm a 58-year-old man with chest pain."),
	})
	s, opening, err := Start(context.Background(), mock)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if opening != "I'm a 58-year-old man with chest pain." {
		t.Fatalf("unexpected opening: %q", opening)
	}
	return s
}

func TestStartSendsOpeningTrigger(t *testing.T) {
	mock := llm.NewMockProvider()
	startTestSession(t, mock)

	if len(mock.ChatSends) != 1 || mock.ChatSends[0] != "Start the encounter." {
		t.Fatalf("unexpected opening turn: %v", mock.ChatSends)
	}
}

func TestSendPlainReply(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage("It started an hour ago.")})
	reply, err := s.Send(context.Background(), "When did it start?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "It started an hour ago." {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestSendLabResultsMergedIntoChart(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage(
		`[LAB_RESULTS] {"CBC": [{"test": "WBC", "value": "7.5", "unit": "x 10^9/L", "reference": "4.0-11.0"}, {"test": "Hemoglobin", "value": "140", "unit": "g/L", "reference": "135-175"}]}`,
	)})

	reply, err := s.Send(context.Background(), "Order CBC")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != "" {
		t.Fatalf("purely structured reply should leave no transcript text, got %q", reply)
	}

	labs := s.Chart().Labs["CBC"]
	if len(labs) != 2 {
		t.Fatalf("expected 2 CBC rows, got %d", len(labs))
	}
	if labs[0].Test != "WBC" || labs[0].Reference != "4.0-11.0" {
		t.Fatalf("unexpected row: %+v", labs[0])
	}
}

func TestSendExamKeepsVitalsSubsection(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage(
		`[EXAM_RESULTS] {"vitals": {"Heart Rate": "88 bpm"}, "Cardiovascular": "No murmurs."} The patient winces as you palpate.`,
	)})
	if _, err := s.Send(context.Background(), "Perform a physical exam"); err != nil {
		t.Fatalf("send: %v", err)
	}

	// A later exam without vitals must not wipe the earlier ones.
	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage(
		`[EXAM_RESULTS] {"Respiratory": "Clear bilaterally."}`,
	)})
	if _, err := s.Send(context.Background(), "Perform a physical exam"); err != nil {
		t.Fatalf("send: %v", err)
	}

	chart := s.Chart()
	if chart.Vitals["Heart Rate"] != "88 bpm" {
		t.Fatalf("vitals lost: %v", chart.Vitals)
	}
	if chart.Exam["Cardiovascular"] != "No murmurs." || chart.Exam["Respiratory"] != "Clear bilaterally." {
		t.Fatalf("exam systems not merged: %v", chart.Exam)
	}
}

func TestSendImagingResults(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage(
		`[IMAGING_RESULTS] {"Chest X-ray": {"findings": "Lungs clear.", "impression": "No acute process."}}`,
	)})
	if _, err := s.Send(context.Background(), "Order Chest X-ray"); err != nil {
		t.Fatalf("send: %v", err)
	}

	report := s.Chart().Imaging["Chest X-ray"]
	if report.Findings != "Lungs clear." || report.Impression != "No acute process." {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestSendMalformedPayloadShowsRawReply(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	raw := `[LAB_RESULTS] {"CBC": not json}`
	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage(raw)})

	reply, err := s.Send(context.Background(), "Order CBC")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply != raw {
		t.Fatalf("malformed payload should surface the raw reply, got %q", reply)
	}
	if !s.Chart().Empty() {
		t.Fatal("chart must stay untouched on parse failure")
	}
}

func TestSendCompletionEndsEncounter(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	mock.AddChatReply(llm.MockResponse{Content: json.RawMessage(
		"The correct diagnosis was STEMI. Good workup.\n[ENCOUNTER_COMPLETE]",
	)})
	reply, err := s.Send(context.Background(), DiagnosisMessage("STEMI"))
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if strings.Contains(reply, "[ENCOUNTER_COMPLETE]") {
		t.Fatalf("token must be stripped: %q", reply)
	}
	if !s.Finished() {
		t.Fatal("session should be finished")
	}

	if _, err := s.Send(context.Background(), "hello?"); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}
}

func TestSendErrorKeepsSessionActive(t *testing.T) {
	mock := llm.NewMockProvider()
	s := startTestSession(t, mock)

	mock.AddChatReply(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	if _, err := s.Send(context.Background(), "How long?"); err == nil {
		t.Fatal("expected error")
	}
	if s.Finished() {
		t.Fatal("a failed turn must not finish the encounter")
	}
	if s.Busy() {
		t.Fatal("busy flag must clear after a failed turn")
	}
}

// blockingChatter hands out a chat whose Send blocks until released,
// so a second concurrent send can be observed.
type blockingChatter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingChatter) NewChat(_ context.Context, _ string) (llm.Chat, error) {
	return &blockingChat{b: b}, nil
}

type blockingChat struct {
	b     *blockingChatter
	turns int
}

func (c *blockingChat) Send(_ context.Context, _ string) (string, error) {
	c.turns++
	if c.turns == 1 {
		// Opening trigger resolves immediately.
		return "opening", nil
	}
	close(c.b.started)
	<-c.b.release
	return "slow reply", nil
}

func TestSendWhilePendingIsIgnored(t *testing.T) {
	chatter := &blockingChatter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s, _, err := Start(context.Background(), chatter)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.Send(context.Background(), "first"); err != nil {
			t.Errorf("first send: %v", err)
		}
	}()

	<-chatter.started
	if _, err := s.Send(context.Background(), "second"); !errors.Is(err, ErrTurnPending) {
		t.Fatalf("expected ErrTurnPending, got %v", err)
	}

	close(chatter.release)
	wg.Wait()
}
