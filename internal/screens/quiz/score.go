package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/router"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// ScoreScreen shows the result of a finished quiz.
type ScoreScreen struct {
	result store.QuizResult
	menu   components.Menu
}

var _ screen.Screen = (*ScoreScreen)(nil)

// NewScore creates the score screen. retake builds a fresh quiz at the
// same level.
func NewScore(result store.QuizResult, retake func() screen.Screen) *ScoreScreen {
	items := []components.MenuItem{
		{Label: "Try Again", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: retake()}
			}
		}},
		{Label: "Back to Home", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PopScreenMsg{}
			}
		}},
	}

	return &ScoreScreen{
		result: result,
		menu:   components.NewMenu(items),
	}
}

func (s *ScoreScreen) Init() tea.Cmd {
	return nil
}

func (s *ScoreScreen) Title() string {
	return "Quiz Complete"
}

func (s *ScoreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ScoreScreen) View(width, height int) string {
	pct := 0
	if s.result.Total > 0 {
		pct = s.result.Score * 100 / s.result.Total
	}

	var sections []string
	sections = append(sections, theme.Title.Render(verdict(pct)))
	sections = append(sections, "")
	sections = append(sections, theme.Body.Bold(true).Render(
		fmt.Sprintf("You scored %d out of %d (%d%%)", s.result.Score, s.result.Total, pct)))
	sections = append(sections, theme.Subtitle.Render(
		fmt.Sprintf("Difficulty: %s", strings.ToUpper(s.result.Level[:1])+s.result.Level[1:])))
	sections = append(sections, "")

	bar := components.NewProgressBar("", float64(pct)/100, false, 40)
	sections = append(sections, bar.View())
	sections = append(sections, "")
	sections = append(sections, s.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func verdict(pct int) string {
	switch {
	case pct >= 80:
		return "Excellent work!"
	case pct >= 60:
		return "Good effort!"
	case pct >= 40:
		return "Keep practicing!"
	default:
		return "Don't give up!"
	}
}
