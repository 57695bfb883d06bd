package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/quiz"
	"github.com/adedotun/medprep/internal/quizgen"
	"github.com/adedotun/medprep/internal/router"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/sound"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// PickerScreen lets the user choose a difficulty level before the quiz
// starts.
type PickerScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)

// NewPicker creates the level picker.
func NewPicker(gen *quizgen.Service, history *store.HistoryRepo, cues *sound.Cues) *PickerScreen {
	items := make([]components.MenuItem, 0, len(quiz.Levels))
	for _, level := range quiz.Levels {
		level := level
		items = append(items, components.MenuItem{
			Label: pickerLabel(level),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.ReplaceScreenMsg{
						Screen: New(gen, history, cues, level),
					}
				}
			},
		})
	}

	return &PickerScreen{menu: components.NewMenu(items)}
}

func pickerLabel(level quiz.Level) string {
	if d := level.TimerDuration(); d > 0 {
		return fmt.Sprintf("%s — %ds per question", level.Title(), d)
	}
	return fmt.Sprintf("%s — no timer", level.Title())
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Take Quiz"
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	var sections []string
	sections = append(sections, theme.Title.Render("Choose a difficulty"))
	sections = append(sections, theme.Subtitle.Render(
		fmt.Sprintf("%d questions per quiz", quiz.QuestionCount)))
	sections = append(sections, "")
	sections = append(sections, p.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
