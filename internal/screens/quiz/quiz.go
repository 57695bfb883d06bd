package quiz

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/adedotun/medprep/internal/quiz"
	"github.com/adedotun/medprep/internal/quizgen"
	"github.com/adedotun/medprep/internal/router"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/sound"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

const loadFailedText = "Failed to generate quiz questions. Please check your connection and try again."

// questionsMsg delivers the generated batch.
type questionsMsg struct {
	RunID     string
	Questions []quizgen.Question
}

// timerTickMsg advances the countdown. QuestionIndex pins each tick
// chain to one question: answering and advancing inside the same
// second leaves the old chain's last tick in flight, and without the
// pin it would consume the new question's time and respawn alongside
// the chain advance() started.
type timerTickMsg struct {
	RunID         string
	QuestionIndex int
}

// feedbackMsg delivers async feedback for a wrong answer. QuestionIndex
// guards against a slow result landing on a later question.
type feedbackMsg struct {
	RunID         string
	QuestionIndex int
	Text          string
}

// QuizScreen runs one quiz from generation through the final question.
type QuizScreen struct {
	gen     *quizgen.Service
	history *store.HistoryRepo
	cues    *sound.Cues
	level   quiz.Level

	// runID tags every async message this run spawns, so results from
	// an abandoned run are dropped.
	runID string

	session          *quiz.Session
	options          components.OptionList
	loading          bool
	errMsg           string
	confirmLeave     bool
	fetchingFeedback bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscHandler = (*QuizScreen)(nil)

// New creates a quiz screen for the given level.
func New(gen *quizgen.Service, history *store.HistoryRepo, cues *sound.Cues, level quiz.Level) *QuizScreen {
	return &QuizScreen{
		gen:     gen,
		history: history,
		cues:    cues,
		level:   level,
		runID:   uuid.New().String(),
		loading: true,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadQuestions()
}

func (s *QuizScreen) Title() string {
	return fmt.Sprintf("Quiz · %s", s.level.Title())
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmLeave {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.session != nil && s.session.Answered() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter/A-E", Description: "Answer"},
		{Key: "Esc", Description: "Leave"},
	}
}

// HandleEsc intercepts the global Esc: leaving a quiz in progress needs
// confirmation.
func (s *QuizScreen) HandleEsc() (bool, tea.Cmd) {
	if s.confirmLeave {
		s.confirmLeave = false
		return true, nil
	}
	if s.session != nil {
		s.confirmLeave = true
		return true, nil
	}
	return false, nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		return s.handleQuestions(msg)
	case timerTickMsg:
		return s.handleTick(msg)
	case feedbackMsg:
		return s.handleFeedback(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// loadQuestions generates the batch off the UI goroutine.
func (s *QuizScreen) loadQuestions() tea.Cmd {
	runID := s.runID
	gen := s.gen
	level := string(s.level)
	return func() tea.Msg {
		questions := gen.GenerateBatch(context.Background(), level, quiz.QuestionCount)
		return questionsMsg{RunID: runID, Questions: questions}
	}
}

func (s *QuizScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	if msg.RunID != s.runID {
		return s, nil
	}

	s.loading = false
	if len(msg.Questions) == 0 {
		s.errMsg = loadFailedText
		return s, nil
	}

	s.session = quiz.NewSession(s.level, msg.Questions)
	q := s.session.Question()
	s.options = components.NewOptionList(q.Options, q.CorrectAnswerIndex)

	if s.session.Timed() {
		return s, s.tick()
	}
	return s, nil
}

func (s *QuizScreen) tick() tea.Cmd {
	runID := s.runID
	index := s.session.Index()
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{RunID: runID, QuestionIndex: index}
	})
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.RunID != s.runID || s.session == nil || msg.QuestionIndex != s.session.Index() {
		return s, nil
	}
	if s.confirmLeave {
		// Paused by the leave dialog; resume ticking without consuming
		// time so the dialog cannot run the clock out.
		return s, s.tick()
	}

	if s.session.Tick() {
		// Timer expired: counts wrong, no feedback fetch.
		s.options.Reveal(-1)
		s.cues.Play(sound.CueIncorrect)
		return s, nil
	}
	if !s.session.Answered() {
		return s, s.tick()
	}
	return s, nil
}

func (s *QuizScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	if msg.RunID != s.runID || s.session == nil {
		return s, nil
	}
	// A slow result for an earlier question is dropped.
	if msg.QuestionIndex != s.session.Index() {
		return s, nil
	}
	s.fetchingFeedback = false
	s.session.SetFeedback(msg.Text)
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmLeave {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N":
			s.confirmLeave = false
		}
		return s, nil
	}

	if s.errMsg != "" {
		if key == "r" || key == "R" {
			s.errMsg = ""
			s.loading = true
			s.runID = uuid.New().String()
			return s, s.loadQuestions()
		}
		return s, nil
	}

	if s.loading || s.session == nil {
		return s, nil
	}

	if s.session.Answered() {
		switch key {
		case "enter", "n", " ":
			return s.advance()
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		s.options.MoveUp()
	case "down", "j":
		s.options.MoveDown()
	case "enter":
		return s.answer(s.options.Cursor)
	case "1", "2", "3", "4", "5":
		return s.answer(int(key[0] - '1'))
	case "a", "b", "c", "d", "e":
		return s.answer(int(key[0] - 'a'))
	}

	return s, nil
}

// answer locks in option i and fetches feedback for a wrong pick.
func (s *QuizScreen) answer(i int) (screen.Screen, tea.Cmd) {
	outcome := s.session.Select(i)
	switch outcome {
	case quiz.SelectIgnored:
		return s, nil
	case quiz.SelectCorrect:
		s.options.Reveal(i)
		s.cues.Play(sound.CueCorrect)
		return s, nil
	default:
		s.options.Reveal(i)
		s.cues.Play(sound.CueIncorrect)
		s.fetchingFeedback = true
		return s, s.fetchFeedback(s.session.Index(), s.session.Question(), i)
	}
}

func (s *QuizScreen) fetchFeedback(index int, q quizgen.Question, chosen int) tea.Cmd {
	runID := s.runID
	gen := s.gen
	return func() tea.Msg {
		text := gen.IncorrectFeedback(context.Background(), q.Question, q.Options[chosen])
		return feedbackMsg{RunID: runID, QuestionIndex: index, Text: text}
	}
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	s.cues.Play(sound.CueAdvance)
	s.fetchingFeedback = false

	result, done := s.session.Advance()
	if !done {
		q := s.session.Question()
		s.options = components.NewOptionList(q.Options, q.CorrectAnswerIndex)
		if s.session.Timed() {
			return s, s.tick()
		}
		return s, nil
	}

	record := store.QuizResult{
		Score: result.Score,
		Total: result.Total,
		Level: string(result.Level),
		Date:  result.Date,
	}
	if err := s.history.Append(record); err != nil {
		fmt.Fprintln(os.Stderr, "medprep: save quiz result:", err)
	}

	gen := s.gen
	history := s.history
	cues := s.cues
	level := s.level
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: NewScore(record, func() screen.Screen {
				return New(gen, history, cues, level)
			}),
		}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if s.confirmLeave {
		return s.renderConfirmLeave(width, height)
	}
	if s.errMsg != "" {
		msg := lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}
	if s.loading || s.session == nil {
		msg := theme.Hint.Render("Generating questions...")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderConfirmLeave(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Leave this quiz?") + "\n\n" +
			theme.Hint.Render("Your progress will be lost. (y/n)"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	sess := s.session
	contentWidth := width - 8
	if contentWidth > 90 {
		contentWidth = 90
	}

	var b strings.Builder

	// Progress and timer line.
	status := fmt.Sprintf("Question %d of %d", sess.Index()+1, sess.Total())
	if sess.Timed() && !sess.Answered() {
		timer := fmt.Sprintf("⏱ %ds", sess.Remaining())
		style := lipgloss.NewStyle().Foreground(theme.Secondary)
		if sess.Remaining() <= 10 {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		status += "   " + style.Render(timer)
	}
	b.WriteString(theme.Subtitle.Render(status) + "\n\n")

	// Vignette.
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(contentWidth).
		Render(sess.Question().Question) + "\n\n")

	b.WriteString(s.options.View(contentWidth))

	if sess.Answered() {
		b.WriteString("\n" + s.renderReveal(contentWidth))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderReveal(contentWidth int) string {
	sess := s.session
	var b strings.Builder

	switch {
	case sess.TimedOut():
		b.WriteString(theme.Incorrect.Render("Time's up!") + "\n")
	case sess.Selected() == sess.Question().CorrectAnswerIndex:
		b.WriteString(theme.Correct.Render("Correct!") + "\n")
	default:
		b.WriteString(theme.Incorrect.Render("Incorrect.") + "\n")
		switch {
		case sess.Feedback() != "":
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Accent).
				Italic(true).
				Width(contentWidth).
				Render(sess.Feedback()) + "\n")
		case s.fetchingFeedback:
			b.WriteString(theme.Hint.Render("Generating feedback...") + "\n")
		}
	}

	b.WriteString("\n" + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(contentWidth).
		Render(sess.Question().Explanation))

	if topics := sess.Question().Topics; len(topics) > 0 {
		b.WriteString("\n\n" + theme.Hint.Render("Topics: "+strings.Join(topics, ", ")))
	}

	return b.String()
}
