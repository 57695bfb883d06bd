package encounter

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/adedotun/medprep/internal/encounter"
	"github.com/adedotun/medprep/internal/llm"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

const (
	startFailedText = "An error occurred while starting the encounter. Please try again later."
	sendFailedText  = "An error occurred. The patient did not respond; please try again."
	completeText    = "The encounter is complete. Review the chart and your diagnosis."
)

// entry roles.
const (
	roleStudent = iota
	rolePatient
	roleSystem
)

type entry struct {
	role int
	text string
}

// startedMsg carries the opened session and the patient's opening
// statement.
type startedMsg struct {
	SessionID string
	Session   *encounter.Session
	Opening   string
	Err       error
}

// replyMsg carries one processed patient reply.
type replyMsg struct {
	SessionID string
	Text      string
	Finished  bool
	Err       error
}

// focus zones.
const (
	focusInput = iota
	focusActions
)

// EncounterScreen runs the simulated clinical encounter: a chat
// transcript on the left, the accumulating patient chart on the right.
type EncounterScreen struct {
	gateway *llm.Gateway

	sessionID  string
	session    *encounter.Session
	transcript []entry

	input     components.TextInput
	focus     int
	actionIdx int
	sending   bool
	starting  bool
	finished  bool

	diagModal bool
	diagInput components.TextInput

	scroll int
}

var _ screen.Screen = (*EncounterScreen)(nil)
var _ screen.KeyHintProvider = (*EncounterScreen)(nil)
var _ screen.EscHandler = (*EncounterScreen)(nil)

// New creates the encounter screen.
func New(gateway *llm.Gateway) *EncounterScreen {
	return &EncounterScreen{
		gateway:   gateway,
		sessionID: uuid.New().String(),
		input:     components.NewTextInput("Ask the patient...", 200),
		starting:  true,
	}
}

func (s *EncounterScreen) Init() tea.Cmd {
	id := s.sessionID
	gw := s.gateway
	return tea.Batch(s.input.Init(), func() tea.Msg {
		session, opening, err := encounter.Start(context.Background(), gw)
		return startedMsg{SessionID: id, Session: session, Opening: opening, Err: err}
	})
}

func (s *EncounterScreen) Title() string {
	return "Clinical Encounter"
}

func (s *EncounterScreen) KeyHints() []layout.KeyHint {
	if s.diagModal {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit diagnosis"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.focus == focusActions {
		return []layout.KeyHint{
			{Key: "←→", Description: "Action"},
			{Key: "Enter", Description: "Run"},
			{Key: "Tab", Description: "Type"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Quick actions"},
		{Key: "Ctrl+D", Description: "Diagnose"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandleEsc closes the diagnosis modal before the router pops.
func (s *EncounterScreen) HandleEsc() (bool, tea.Cmd) {
	if s.diagModal {
		s.diagModal = false
		return true, nil
	}
	return false, nil
}

func (s *EncounterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		s.starting = false
		if msg.Err != nil {
			s.transcript = append(s.transcript, entry{role: roleSystem, text: startFailedText})
			return s, nil
		}
		s.session = msg.Session
		s.transcript = append(s.transcript, entry{role: rolePatient, text: msg.Opening})
		return s, nil

	case replyMsg:
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		s.sending = false
		if msg.Err != nil {
			s.transcript = append(s.transcript, entry{role: roleSystem, text: sendFailedText})
			return s, nil
		}
		if msg.Text != "" {
			s.transcript = append(s.transcript, entry{role: rolePatient, text: msg.Text})
		}
		if msg.Finished {
			s.finished = true
			s.transcript = append(s.transcript, entry{role: roleSystem, text: completeText})
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == focusInput && !s.diagModal {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *EncounterScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.diagModal {
		if key == "enter" {
			dx := strings.TrimSpace(s.diagInput.Value())
			if dx == "" {
				s.diagInput.SetError("Enter a diagnosis first.")
				return s, nil
			}
			s.diagModal = false
			return s, s.send(encounter.DiagnosisMessage(dx))
		}
		var cmd tea.Cmd
		s.diagInput, cmd = s.diagInput.Update(msg)
		return s, cmd
	}

	switch key {
	case "tab":
		if s.focus == focusInput {
			s.focus = focusActions
			s.input.Model.Blur()
			return s, nil
		}
		s.focus = focusInput
		return s, s.input.Model.Focus()

	case "ctrl+d":
		if s.canSend() {
			s.diagModal = true
			s.diagInput = components.NewTextInput("Your final diagnosis...", 120)
			return s, s.diagInput.Init()
		}
		return s, nil

	case "pgup":
		if s.scroll > 0 {
			s.scroll--
		}
		return s, nil
	case "pgdown":
		s.scroll++
		return s, nil
	}

	if s.focus == focusActions {
		switch key {
		case "left", "h":
			if s.actionIdx > 0 {
				s.actionIdx--
			}
		case "right", "l":
			if s.actionIdx < len(encounter.QuickActions)-1 {
				s.actionIdx++
			}
		case "enter":
			return s, s.send(encounter.QuickActions[s.actionIdx].Message)
		}
		return s, nil
	}

	if key == "enter" {
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		cmd := s.send(text)
		if cmd != nil {
			s.input.Reset()
		}
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *EncounterScreen) canSend() bool {
	return s.session != nil && !s.sending && !s.starting && !s.finished
}

// send submits one turn. Attempts while a turn is pending are dropped,
// not queued.
func (s *EncounterScreen) send(text string) tea.Cmd {
	if !s.canSend() {
		return nil
	}
	s.sending = true
	s.transcript = append(s.transcript, entry{role: roleStudent, text: text})

	id := s.sessionID
	session := s.session
	return func() tea.Msg {
		reply, err := session.Send(context.Background(), text)
		return replyMsg{
			SessionID: id,
			Text:      reply,
			Finished:  session.Finished(),
			Err:       err,
		}
	}
}

func (s *EncounterScreen) View(width, height int) string {
	chartWidth := 0
	if width >= layout.CompactWidthThreshold {
		chartWidth = 38
	}
	mainWidth := width - chartWidth - 2

	main := s.renderTranscript(mainWidth, height)
	if s.diagModal {
		modal := theme.Card.Render(
			theme.Body.Bold(true).Render("Final diagnosis") + "\n\n" +
				s.diagInput.View())
		main = lipgloss.Place(mainWidth, height, lipgloss.Center, lipgloss.Center, modal)
	}

	if chartWidth == 0 {
		return main
	}

	chart := s.renderChart(chartWidth-2, height)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth).Render(main),
		lipgloss.NewStyle().Width(chartWidth).Render(chart))
}

func (s *EncounterScreen) renderTranscript(width, height int) string {
	if s.starting {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Connecting to the patient..."))
	}

	var lines []string
	bubbleWidth := width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for _, e := range s.transcript {
		var label string
		var style lipgloss.Style
		switch e.role {
		case roleStudent:
			label = "You"
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		case rolePatient:
			label = "Patient"
			style = lipgloss.NewStyle().Foreground(theme.Text)
		default:
			label = "—"
			style = lipgloss.NewStyle().Foreground(theme.Error).Italic(true)
		}

		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(label))
		body := style.Width(bubbleWidth).Render(e.text)
		lines = append(lines, strings.Split(body, "\n")...)
		lines = append(lines, "")
	}

	if s.sending {
		lines = append(lines, theme.Hint.Render("The patient is thinking..."))
	}

	// Reserve rows for the input area.
	inputArea := s.renderInputArea(width)
	inputHeight := lipgloss.Height(inputArea) + 1

	visible := height - inputHeight
	if visible < 1 {
		visible = 1
	}

	// Pin to the newest entries, letting pgup/pgdown look back.
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	offset := maxScroll - s.scroll
	if offset < 0 {
		offset = 0
		s.scroll = maxScroll
	}

	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[offset:end], "\n") + "\n" + inputArea
}

func (s *EncounterScreen) renderInputArea(width int) string {
	if s.finished {
		return lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true).
			Render("Encounter complete.")
	}

	var actions []string
	for i, a := range encounter.QuickActions {
		style := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Padding(0, 1)
		if s.focus == focusActions && i == s.actionIdx {
			style = style.Foreground(theme.BgDark).Background(theme.Primary).Bold(true)
		}
		actions = append(actions, style.Render(a.Label))
	}
	actionRow := strings.Join(actions, " ")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(width - 2)
	if s.focus == focusInput {
		inputStyle = inputStyle.BorderForeground(theme.Primary)
	}
	if s.sending {
		inputStyle = inputStyle.BorderForeground(theme.TextDim)
	}

	return actionRow + "\n" + inputStyle.Render(s.input.View())
}

func (s *EncounterScreen) renderChart(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Patient Chart") + "\n\n")

	if s.session == nil || s.session.Chart().Empty() {
		b.WriteString(theme.Hint.Render("Nothing charted yet.\nExamine the patient or\norder investigations."))
	} else {
		chart := s.session.Chart()
		keyStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
		valStyle := lipgloss.NewStyle().Foreground(theme.Text)
		headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

		if len(chart.Vitals) > 0 {
			b.WriteString(headStyle.Render("Vitals") + "\n")
			for _, name := range chart.VitalNames() {
				b.WriteString(keyStyle.Render(name+": ") + valStyle.Render(chart.Vitals[name]) + "\n")
			}
			b.WriteString("\n")
		}

		if len(chart.Exam) > 0 {
			b.WriteString(headStyle.Render("Physical Exam") + "\n")
			for _, sys := range chart.ExamSystems() {
				b.WriteString(keyStyle.Render(sys+": ") +
					valStyle.Width(width-2).Render(chart.Exam[sys]) + "\n")
			}
			b.WriteString("\n")
		}

		if len(chart.Labs) > 0 {
			b.WriteString(headStyle.Render("Lab Results") + "\n")
			for _, panel := range chart.LabPanels() {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(panel) + "\n")
				for _, r := range chart.Labs[panel] {
					line := r.Test + ": " + r.Value
					if r.Unit != "" {
						line += " " + r.Unit
					}
					if r.Reference != "" {
						line += "  (" + r.Reference + ")"
					}
					b.WriteString(valStyle.Width(width - 2).Render(line) + "\n")
				}
			}
			b.WriteString("\n")
		}

		if len(chart.Imaging) > 0 {
			b.WriteString(headStyle.Render("Imaging") + "\n")
			for _, study := range chart.ImagingStudies() {
				report := chart.Imaging[study]
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(study) + "\n")
				b.WriteString(keyStyle.Render("Findings: ") +
					valStyle.Width(width-2).Render(report.Findings) + "\n")
				b.WriteString(keyStyle.Render("Impression: ") +
					valStyle.Width(width-2).Render(report.Impression) + "\n")
			}
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(width).
		Height(height - 2).
		Render(b.String())
}
