package quiz

import (
	"time"

	"github.com/adedotun/medprep/internal/quizgen"
)

// QuestionCount is the fixed number of questions per quiz.
const QuestionCount = 5

// SelectOutcome is the result of answering a question.
type SelectOutcome int

const (
	// SelectIgnored means the question was already answered; nothing
	// changed.
	SelectIgnored SelectOutcome = iota
	// SelectCorrect means the chosen option was right.
	SelectCorrect
	// SelectIncorrect means the chosen option was wrong; the caller
	// should fetch feedback for it.
	SelectIncorrect
)

// Result is one completed quiz.
type Result struct {
	Score int
	Total int
	Level Level
	Date  time.Time
}

// Session is the state machine for one quiz run. It holds no I/O: answer
// feedback is fetched by the caller and attached with SetFeedback, and
// the countdown advances only through Tick.
type Session struct {
	level     Level
	questions []quizgen.Question

	index     int
	score     int
	answered  bool
	timedOut  bool
	selected  int
	remaining int
	feedback  string
}

// NewSession starts a quiz over the given questions.
func NewSession(level Level, questions []quizgen.Question) *Session {
	return &Session{
		level:     level,
		questions: questions,
		selected:  -1,
		remaining: level.TimerDuration(),
	}
}

// Level returns the session difficulty.
func (s *Session) Level() Level { return s.level }

// Question returns the current question.
func (s *Session) Question() quizgen.Question { return s.questions[s.index] }

// Index returns the 0-based position of the current question.
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the quiz.
func (s *Session) Total() int { return len(s.questions) }

// Score returns the running count of correct answers.
func (s *Session) Score() int { return s.score }

// Answered reports whether the current question has been answered or
// timed out.
func (s *Session) Answered() bool { return s.answered }

// TimedOut reports whether the current question ended by running out of
// time rather than by a selection.
func (s *Session) TimedOut() bool { return s.timedOut }

// Selected returns the chosen option index, or -1 if none.
func (s *Session) Selected() int { return s.selected }

// Remaining returns the seconds left on the current question; 0 when
// untimed or expired.
func (s *Session) Remaining() int { return s.remaining }

// Timed reports whether the current question carries a countdown.
func (s *Session) Timed() bool { return s.level.TimerDuration() > 0 }

// Feedback returns the per-option feedback attached for the current
// question, if any.
func (s *Session) Feedback() string { return s.feedback }

// SetFeedback attaches feedback text for the current question. A late
// result arriving after the question was advanced past is the caller's
// problem; screens guard with a sequence number.
func (s *Session) SetFeedback(text string) { s.feedback = text }

// Select answers the current question with option i. Selecting on an
// answered question is a no-op; the first selection freezes the timer
// and locks the answer in.
func (s *Session) Select(i int) SelectOutcome {
	if s.answered || i < 0 || i >= len(s.questions[s.index].Options) {
		return SelectIgnored
	}

	s.answered = true
	s.selected = i

	if i == s.questions[s.index].CorrectAnswerIndex {
		s.score++
		return SelectCorrect
	}
	return SelectIncorrect
}

// Tick advances the countdown by one second. It reports true when this
// tick expired the timer: the question becomes answered and timed out,
// counting as wrong, and no feedback is fetched.
func (s *Session) Tick() bool {
	if s.answered || !s.Timed() {
		return false
	}

	s.remaining--
	if s.remaining > 0 {
		return false
	}

	s.remaining = 0
	s.answered = true
	s.timedOut = true
	s.selected = -1
	return true
}

// Advance moves to the next question, resetting per-question state. On
// the last question it instead emits the final Result and reports done.
func (s *Session) Advance() (Result, bool) {
	if s.index+1 >= len(s.questions) {
		return Result{
			Score: s.score,
			Total: len(s.questions),
			Level: s.level,
			Date:  time.Now(),
		}, true
	}

	s.index++
	s.answered = false
	s.timedOut = false
	s.selected = -1
	s.feedback = ""
	s.remaining = s.level.TimerDuration()
	return Result{}, false
}
