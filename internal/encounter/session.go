package encounter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/adedotun/medprep/internal/llm"
)

// ErrTurnPending is returned by Send while a previous turn is still in
// flight. The attempted message is dropped, not queued.
var ErrTurnPending = errors.New("a turn is already in flight")

// ErrFinished is returned by Send after the encounter has completed.
var ErrFinished = errors.New("the encounter is complete")

// Session runs one clinical encounter over a stateful chat. It enforces
// a single outstanding turn and folds structured replies into the
// patient chart.
type Session struct {
	mu       sync.Mutex
	chat     llm.Chat
	chart    Chart
	finished bool
	busy     bool
}

// Start opens the chat with the patient-simulator instruction and sends
// the opening trigger. It returns the session and the patient's opening
// statement.
func Start(ctx context.Context, chatter llm.Chatter) (*Session, string, error) {
	chat, err := chatter.NewChat(ctx, systemInstruction)
	if err != nil {
		return nil, "", fmt.Errorf("open encounter chat: %w", err)
	}

	opening, err := chat.Send(ctx, openingTrigger)
	if err != nil {
		return nil, "", fmt.Errorf("start encounter: %w", err)
	}

	return &Session{chat: chat}, opening, nil
}

// Finished reports whether the simulation has ended.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Busy reports whether a turn is currently in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Chart returns a snapshot view of the accumulated patient chart.
func (s *Session) Chart() *Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &s.chart
}

// Send submits one turn and returns the processed patient reply:
// the completion token checked and stripped first, then any structured
// marker extracted and merged into the chart. The returned text may be
// empty when the reply was purely structured; such turns add no
// transcript entry.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return "", ErrFinished
	}
	if s.busy {
		s.mu.Unlock()
		return "", ErrTurnPending
	}
	s.busy = true
	s.mu.Unlock()

	reply, err := s.chat.Send(ctx, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		return "", err
	}

	reply, done := stripComplete(reply)
	if done {
		s.finished = true
	}

	kind, payload, remainder, found := extractMarker(reply)
	if !found {
		return reply, nil
	}
	if err := s.chart.Apply(kind, payload); err != nil {
		// Show the raw reply rather than lose the turn.
		fmt.Fprintf(os.Stderr, "warning: failed to parse chart data: %v\n", err)
		return reply, nil
	}
	return remainder, nil
}
