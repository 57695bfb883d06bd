package quiz

import (
	"testing"

	"github.com/adedotun/medprep/internal/quiz"
	"github.com/adedotun/medprep/internal/quizgen"
	"github.com/adedotun/medprep/internal/sound"
	"github.com/adedotun/medprep/internal/speech"
)

func testQuestions() []quizgen.Question {
	return []quizgen.Question{
		{
			Question:           "First vignette",
			Options:            []string{"A", "B", "C", "D"},
			CorrectAnswerIndex: 0,
			Explanation:        "First explanation",
		},
		{
			Question:           "Second vignette",
			Options:            []string{"A", "B", "C", "D"},
			CorrectAnswerIndex: 1,
			Explanation:        "Second explanation",
		},
	}
}

// newTimedQuiz builds a quiz screen on the advanced level (60s per
// question) with two questions already loaded.
func newTimedQuiz(t *testing.T) *QuizScreen {
	t.Helper()
	cues := sound.New(speech.NopPlayer{}, func() bool { return true })
	s := New(nil, nil, cues, quiz.LevelAdvanced)
	updated, _ := s.handleQuestions(questionsMsg{RunID: s.runID, Questions: testQuestions()})
	qs, ok := updated.(*QuizScreen)
	if !ok {
		t.Fatalf("expected *QuizScreen, got %T", updated)
	}
	if qs.session == nil {
		t.Fatal("session not started")
	}
	return qs
}

func TestTickCountsDownAndReschedules(t *testing.T) {
	s := newTimedQuiz(t)
	before := s.session.Remaining()

	_, cmd := s.handleTick(timerTickMsg{RunID: s.runID, QuestionIndex: s.session.Index()})

	if got := s.session.Remaining(); got != before-1 {
		t.Errorf("remaining = %d, want %d", got, before-1)
	}
	if cmd == nil {
		t.Error("expected the tick chain to continue")
	}
}

func TestStaleTickFromPreviousQuestionIsDropped(t *testing.T) {
	s := newTimedQuiz(t)

	// Answer and advance within the same second; the old chain's last
	// tick is still in flight and arrives on the next question.
	s.answer(s.session.Question().CorrectAnswerIndex)
	s.advance()
	if s.session.Index() != 1 {
		t.Fatalf("index = %d, want 1", s.session.Index())
	}
	before := s.session.Remaining()

	_, cmd := s.handleTick(timerTickMsg{RunID: s.runID, QuestionIndex: 0})

	if got := s.session.Remaining(); got != before {
		t.Errorf("stale tick consumed time: remaining = %d, want %d", got, before)
	}
	if cmd != nil {
		t.Error("stale tick must not reschedule a second chain")
	}
}

func TestStaleTickFromAbandonedRunIsDropped(t *testing.T) {
	s := newTimedQuiz(t)
	before := s.session.Remaining()

	_, cmd := s.handleTick(timerTickMsg{RunID: "stale-run", QuestionIndex: s.session.Index()})

	if got := s.session.Remaining(); got != before {
		t.Errorf("stale tick consumed time: remaining = %d, want %d", got, before)
	}
	if cmd != nil {
		t.Error("stale tick must not reschedule")
	}
}

func TestLeaveDialogPausesCountdown(t *testing.T) {
	s := newTimedQuiz(t)
	s.confirmLeave = true
	before := s.session.Remaining()

	_, cmd := s.handleTick(timerTickMsg{RunID: s.runID, QuestionIndex: s.session.Index()})

	if got := s.session.Remaining(); got != before {
		t.Errorf("dialog must not consume time: remaining = %d, want %d", got, before)
	}
	if cmd == nil {
		t.Error("expected the tick chain to survive the dialog")
	}
}
