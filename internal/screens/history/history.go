package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// HistoryScreen lists past quiz results, newest first, with a
// clear-history action.
type HistoryScreen struct {
	repo         *store.HistoryRepo
	results      []store.QuizResult
	selected     int
	confirmClear bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(repo *store.HistoryRepo) *HistoryScreen {
	results := repo.All()
	// Stored oldest first; show newest first.
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return &HistoryScreen{
		repo:    repo,
		results: results,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Quiz History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmClear {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear all"},
			{Key: "N", Description: "Cancel"},
		}
	}
	if len(s.results) == 0 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "C", Description: "Clear history"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.confirmClear {
		switch kmsg.String() {
		case "y", "Y":
			if err := s.repo.Clear(); err == nil {
				s.results = nil
				s.selected = 0
			}
			s.confirmClear = false
		case "n", "N", "esc":
			s.confirmClear = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.results)-1 {
			s.selected++
		}
	case "c", "C":
		if len(s.results) > 0 {
			s.confirmClear = true
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.confirmClear {
		box := theme.Card.Render(
			theme.Body.Bold(true).Render("Clear all quiz history?") + "\n\n" +
				theme.Hint.Render("This cannot be undone. (y/n)"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	}

	if len(s.results) == 0 {
		msg := theme.Hint.Render("No quizzes taken yet. Your results will appear here.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		pct := 0
		if r.Total > 0 {
			pct = r.Score * 100 / r.Total
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-12s  %d/%d  %3d%%",
			prefix, r.Date.Format("Jan 02, 2006 15:04"), r.Level, r.Score, r.Total, pct)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		switch {
		case pct >= 80:
			line += "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		case pct >= 50:
			line += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render("●")
		default:
			line += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render("●")
		}

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
