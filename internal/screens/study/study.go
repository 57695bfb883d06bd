package study

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/adedotun/medprep/internal/guide"
	"github.com/adedotun/medprep/internal/router"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/speech"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// search screen focus zones.
const (
	focusInput = iota
	focusList
)

// definitionMsg delivers a glossary lookup result.
type definitionMsg struct {
	LookupID string
	Term     string
	Text     string
}

// SearchScreen is the study landing view: a topic search box, the
// popular starter topics, saved guides, and a glossary lookup mode.
type SearchScreen struct {
	svc    *guide.Service
	guides *store.GuideRepo
	speech *speech.Cache

	input        components.TextInput
	focus        int
	selected     int
	glossaryMode bool

	// glossary lookup state
	lookupID   string
	lookingUp  string
	definition string
	defTerm    string
}

var _ screen.Screen = (*SearchScreen)(nil)
var _ screen.KeyHintProvider = (*SearchScreen)(nil)

// New creates the study search screen.
func New(svc *guide.Service, guides *store.GuideRepo, speech *speech.Cache) *SearchScreen {
	return &SearchScreen{
		svc:    svc,
		guides: guides,
		speech: speech,
		input:  components.NewTextInput("Search a medical topic...", 80),
	}
}

func (s *SearchScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SearchScreen) Title() string {
	return "Study Guides"
}

func (s *SearchScreen) KeyHints() []layout.KeyHint {
	if s.focus == focusList {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open"},
			{Key: "D", Description: "Delete saved"},
			{Key: "Tab", Description: "Search"},
			{Key: "Esc", Description: "Back"},
		}
	}
	mode := "Glossary"
	if s.glossaryMode {
		mode = "Topic search"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Go"},
		{Key: "Tab", Description: "Browse topics"},
		{Key: "Ctrl+G", Description: mode},
		{Key: "Esc", Description: "Back"},
	}
}

// entries returns the browsable list: popular topics, then saved guides.
func (s *SearchScreen) entries() ([]string, []store.SavedGuide) {
	return guide.PopularTopics, s.guides.All()
}

func (s *SearchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case definitionMsg:
		if msg.LookupID != s.lookupID {
			return s, nil
		}
		s.lookingUp = ""
		s.defTerm = msg.Term
		s.definition = msg.Text
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SearchScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "tab":
		if s.focus == focusInput {
			s.focus = focusList
			s.input.Model.Blur()
		} else {
			s.focus = focusInput
			return s, s.input.Model.Focus()
		}
		return s, nil
	case "ctrl+g":
		s.glossaryMode = !s.glossaryMode
		s.definition = ""
		s.input.Reset()
		if s.glossaryMode {
			s.input.Model.Placeholder = "Look up a medical term..."
		} else {
			s.input.Model.Placeholder = "Search a medical topic..."
		}
		return s, nil
	}

	if s.focus == focusList {
		return s.handleListKey(key)
	}

	if key == "enter" {
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		if s.glossaryMode {
			return s, s.lookup(text)
		}
		return s, openGuide(s.svc, s.guides, s.speech, text, "")
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SearchScreen) handleListKey(key string) (screen.Screen, tea.Cmd) {
	topics, saved := s.entries()
	total := len(topics) + len(saved)

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < total-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(topics) {
			return s, openGuide(s.svc, s.guides, s.speech, topics[s.selected], "")
		}
		g := saved[s.selected-len(topics)]
		return s, openGuide(s.svc, s.guides, s.speech, g.Topic, g.Content)
	case "d", "D":
		if s.selected >= len(topics) {
			g := saved[s.selected-len(topics)]
			// Toggle on a saved topic removes it; progress stays.
			_, _ = s.guides.Toggle(g.Topic, g.Content)
			if s.selected >= total-1 && s.selected > 0 {
				s.selected--
			}
		}
	}
	return s, nil
}

// lookup runs a glossary definition fetch.
func (s *SearchScreen) lookup(term string) tea.Cmd {
	s.lookupID = uuid.New().String()
	s.lookingUp = term
	s.definition = ""

	id := s.lookupID
	svc := s.svc
	return func() tea.Msg {
		text := svc.Define(context.Background(), term)
		return definitionMsg{LookupID: id, Term: term, Text: text}
	}
}

// openGuide pushes the reading view; content is non-empty when opening
// a saved guide, which skips streaming.
func openGuide(svc *guide.Service, guides *store.GuideRepo, sp *speech.Cache, topic, content string) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: NewGuideView(svc, guides, sp, topic, content),
		}
	}
}

func (s *SearchScreen) View(width, height int) string {
	var b strings.Builder

	heading := "Study Guides"
	if s.glossaryMode {
		heading = "Glossary"
	}
	b.WriteString(theme.Title.Width(width).Render(heading) + "\n\n")

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(min(width-8, 70))
	if s.focus == focusInput {
		inputStyle = inputStyle.BorderForeground(theme.Primary)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		inputStyle.Render(s.input.View())) + "\n")

	if s.lookingUp != "" {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("Looking up %q...", s.lookingUp))) + "\n")
	}
	if s.definition != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-12, 66))
		if s.definition == guide.TermNotFound {
			style = style.Foreground(theme.Accent)
		}
		box := theme.Card.Render(
			theme.Body.Bold(true).Render(s.defTerm) + "\n\n" + style.Render(s.definition))
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, box) + "\n")
	}

	if !s.glossaryMode {
		b.WriteString("\n" + s.renderLists(width))
	}

	return b.String()
}

func (s *SearchScreen) renderLists(width int) string {
	topics, saved := s.entries()
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render("Popular topics")) + "\n")
	for i, t := range topics {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			s.listLine(t, i)) + "\n")
	}

	if len(saved) > 0 {
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Subtitle.Render("Saved guides")) + "\n")
		for i, g := range saved {
			label := fmt.Sprintf("%s  (saved %s)", g.Topic, g.SavedAt.Format("Jan 02"))
			if total := guide.SectionCount(g.Content); total > 0 {
				label += fmt.Sprintf("  %d/%d", len(s.guides.Progress(g.Topic)), total)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				s.listLine(label, len(topics)+i)) + "\n")
		}
	}

	return b.String()
}

func (s *SearchScreen) listLine(label string, index int) string {
	if s.focus == focusList && index == s.selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + label)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  " + label)
}
