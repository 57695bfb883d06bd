package reminders

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/reminder"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// form fields, in tab order.
const (
	fieldTopic = iota
	fieldTime
	fieldFrequency
)

var frequencies = []string{store.FrequencyOnce, store.FrequencyDaily, store.FrequencyWeekly}

// RemindersScreen manages study reminders: a small form above the list
// of pending entries, with recently fired reminders surfaced at the top.
type RemindersScreen struct {
	sched *reminder.Scheduler

	topicInput components.TextInput
	timeInput  components.TextInput
	freqIdx    int
	field      int

	reminders []store.Reminder
	selected  int
	listFocus bool

	fired     []store.Reminder
	firedAt   time.Time
	formError string
}

var _ screen.Screen = (*RemindersScreen)(nil)
var _ screen.KeyHintProvider = (*RemindersScreen)(nil)

// New creates the reminders screen.
func New(sched *reminder.Scheduler) *RemindersScreen {
	return &RemindersScreen{
		sched:      sched,
		topicInput: components.NewTextInput("Topic to study...", 60),
		timeInput:  components.NewTextInput("HH:MM", 5),
		reminders:  sched.All(),
	}
}

func (s *RemindersScreen) Init() tea.Cmd {
	return s.topicInput.Init()
}

func (s *RemindersScreen) Title() string {
	return "Study Reminders"
}

func (s *RemindersScreen) KeyHints() []layout.KeyHint {
	if s.listFocus {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "D", Description: "Delete"},
			{Key: "Tab", Description: "Form"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Frequency"},
		{Key: "Enter", Description: "Add"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RemindersScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reminder.FiredMsg:
		s.fired = msg.Fired
		s.firedAt = time.Now()
		// Once-reminders delete themselves after firing.
		s.reminders = s.sched.All()
		if s.selected >= len(s.reminders) && s.selected > 0 {
			s.selected = len(s.reminders) - 1
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToField(msg)
}

func (s *RemindersScreen) forwardToField(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.listFocus {
		return s, nil
	}
	var cmd tea.Cmd
	switch s.field {
	case fieldTopic:
		s.topicInput, cmd = s.topicInput.Update(msg)
	case fieldTime:
		s.timeInput, cmd = s.timeInput.Update(msg)
	}
	return s, cmd
}

func (s *RemindersScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "tab" {
		return s.cycleFocus()
	}

	if s.listFocus {
		switch key {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.reminders)-1 {
				s.selected++
			}
		case "d", "D":
			if s.selected < len(s.reminders) {
				if err := s.sched.Remove(s.reminders[s.selected].ID); err == nil {
					s.reminders = s.sched.All()
					if s.selected >= len(s.reminders) && s.selected > 0 {
						s.selected--
					}
				}
			}
		}
		return s, nil
	}

	switch key {
	case "enter":
		return s.submit()
	case "left", "right":
		if s.field == fieldFrequency {
			if key == "left" && s.freqIdx > 0 {
				s.freqIdx--
			}
			if key == "right" && s.freqIdx < len(frequencies)-1 {
				s.freqIdx++
			}
			return s, nil
		}
	}

	return s.forwardToField(msg)
}

// cycleFocus walks topic → time → frequency → list → topic.
func (s *RemindersScreen) cycleFocus() (screen.Screen, tea.Cmd) {
	if s.listFocus {
		s.listFocus = false
		s.field = fieldTopic
		return s, s.topicInput.Model.Focus()
	}

	switch s.field {
	case fieldTopic:
		s.field = fieldTime
		s.topicInput.Model.Blur()
		return s, s.timeInput.Model.Focus()
	case fieldTime:
		s.field = fieldFrequency
		s.timeInput.Model.Blur()
		return s, nil
	default:
		if len(s.reminders) > 0 {
			s.listFocus = true
			return s, nil
		}
		s.field = fieldTopic
		return s, s.topicInput.Model.Focus()
	}
}

func (s *RemindersScreen) submit() (screen.Screen, tea.Cmd) {
	_, err := s.sched.Add(s.topicInput.Value(), s.timeInput.Value(), frequencies[s.freqIdx], time.Now())
	if err != nil {
		s.formError = err.Error()
		return s, nil
	}

	s.formError = ""
	s.topicInput.Reset()
	s.timeInput.Reset()
	s.freqIdx = 0
	s.field = fieldTopic
	s.reminders = s.sched.All()
	return s, s.topicInput.Model.Focus()
}

func (s *RemindersScreen) View(width, height int) string {
	var b strings.Builder

	// Recently fired banner.
	if len(s.fired) > 0 && time.Since(s.firedAt) < time.Minute {
		var topics []string
		for _, r := range s.fired {
			topics = append(topics, r.Topic)
		}
		banner := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render("⏰ Time to study: " + strings.Join(topics, ", "))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, banner) + "\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderForm()) + "\n\n")
	b.WriteString(s.renderList(width))

	return b.String()
}

func (s *RemindersScreen) renderForm() string {
	fieldStyle := func(active bool) lipgloss.Style {
		st := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1)
		if active && !s.listFocus {
			st = st.BorderForeground(theme.Primary)
		}
		return st
	}

	topic := fieldStyle(s.field == fieldTopic).Width(40).Render(s.topicInput.View())
	at := fieldStyle(s.field == fieldTime).Width(9).Render(s.timeInput.View())

	freqLabel := frequencies[s.freqIdx]
	freq := fieldStyle(s.field == fieldFrequency).Render("◂ " + freqLabel + " ▸")

	form := lipgloss.JoinHorizontal(lipgloss.Top, topic, " ", at, " ", freq)

	if s.formError != "" {
		form += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.formError)
	}
	return form
}

func (s *RemindersScreen) renderList(width int) string {
	if len(s.reminders) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No reminders yet. Add one above."))
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Pending reminders")) + "\n")

	for i, r := range s.reminders {
		prefix := "  "
		if s.listFocus && i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s  at %s  (%s)", prefix, r.Topic, r.Time, r.Frequency)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if s.listFocus && i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n")
	}
	return b.String()
}
