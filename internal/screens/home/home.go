package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/guide"
	"github.com/adedotun/medprep/internal/llm"
	"github.com/adedotun/medprep/internal/quizgen"
	"github.com/adedotun/medprep/internal/reminder"
	"github.com/adedotun/medprep/internal/router"
	"github.com/adedotun/medprep/internal/screen"
	encounterscreen "github.com/adedotun/medprep/internal/screens/encounter"
	"github.com/adedotun/medprep/internal/screens/history"
	quizscreen "github.com/adedotun/medprep/internal/screens/quiz"
	reminderscreen "github.com/adedotun/medprep/internal/screens/reminders"
	"github.com/adedotun/medprep/internal/screens/study"
	"github.com/adedotun/medprep/internal/sound"
	"github.com/adedotun/medprep/internal/speech"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/components"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// Deps bundles everything the home screen hands down to the feature
// screens. AI-backed entries are nil when no provider is configured.
type Deps struct {
	History   *store.HistoryRepo
	Guides    *store.GuideRepo
	Prefs     *store.PrefsRepo
	Gateway   *llm.Gateway
	QuizGen   *quizgen.Service
	GuideSvc  *guide.Service
	Speech    *speech.Cache
	Cues      *sound.Cues
	Scheduler *reminder.Scheduler
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	aiReady := deps.Gateway != nil

	items := []components.MenuItem{
		{Label: "Take Quiz", Disabled: !aiReady, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: quizscreen.NewPicker(deps.QuizGen, deps.History, deps.Cues),
				}
			}
		}},
		{Label: "Study Guides", Disabled: !aiReady, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: study.New(deps.GuideSvc, deps.Guides, deps.Speech),
				}
			}
		}},
		{Label: "Clinical Encounter", Disabled: !aiReady, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: encounterscreen.New(deps.Gateway),
				}
			}
		}},
		{Label: "Study Reminders", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: reminderscreen.New(deps.Scheduler),
				}
			}
		}},
		{Label: "Quiz History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: history.New(deps.History),
				}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "m", "M":
			_ = h.deps.Prefs.SetMuted(!h.deps.Prefs.Muted())
			return h, nil
		case "t", "T":
			theme.Apply(h.cycleTheme())
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// cycleTheme rotates light → dark → system and persists the choice.
func (h *HomeScreen) cycleTheme() string {
	next := store.ThemeLight
	switch h.deps.Prefs.Theme() {
	case store.ThemeLight:
		next = store.ThemeDark
	case store.ThemeDark:
		next = store.ThemeSystem
	}
	_ = h.deps.Prefs.SetTheme(next)
	return next
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := theme.Title.Render("MedPrep")
	subtitle := theme.Subtitle.Render("MCCQE1 Exam Preparation")
	sections = append(sections, title, subtitle, "")

	if h.deps.Gateway == nil {
		warn := lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("No LLM provider configured — AI features disabled.")
		sections = append(sections, warn, "")
	}

	sections = append(sections, h.statsLine(), "")
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// statsLine summarizes past results for a quick sense of progress.
func (h *HomeScreen) statsLine() string {
	results := h.deps.History.All()
	saved := len(h.deps.Guides.All())

	if len(results) == 0 && saved == 0 {
		return theme.Hint.Render("No quizzes taken yet.")
	}

	best := 0
	for _, r := range results {
		if r.Total > 0 {
			pct := r.Score * 100 / r.Total
			if pct > best {
				best = pct
			}
		}
	}

	return theme.Hint.Render(fmt.Sprintf(
		"%d quizzes · best %d%% · %d saved guides", len(results), best, saved))
}
