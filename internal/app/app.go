package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/adedotun/medprep/internal/guide"
	"github.com/adedotun/medprep/internal/llm"
	"github.com/adedotun/medprep/internal/quizgen"
	"github.com/adedotun/medprep/internal/reminder"
	"github.com/adedotun/medprep/internal/router"
	"github.com/adedotun/medprep/internal/screen"
	"github.com/adedotun/medprep/internal/screens/home"
	"github.com/adedotun/medprep/internal/sound"
	"github.com/adedotun/medprep/internal/speech"
	"github.com/adedotun/medprep/internal/store"
	"github.com/adedotun/medprep/internal/ui/layout"
	"github.com/adedotun/medprep/internal/ui/theme"
)

// Options carries the wired dependencies for the TUI. Gateway and the
// services built on it are nil when no LLM provider is configured; AI
// features are then disabled rather than failing.
type Options struct {
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

// sweepTickMsg drives the reminder sweep.
type sweepTickMsg time.Time

// bannerClearMsg hides the reminder banner again.
type bannerClearMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
	banner string
}

func newAppModel(opts Options) AppModel {
	theme.Apply(opts.Prefs.Theme())

	homeScreen := home.New(home.Deps{
		History:   opts.History,
		Guides:    opts.Guides,
		Prefs:     opts.Prefs,
		Gateway:   opts.Gateway,
		QuizGen:   opts.QuizGen,
		GuideSvc:  opts.GuideSvc,
		Speech:    opts.Speech,
		Cues:      opts.Cues,
		Scheduler: opts.Scheduler,
	})
	return AppModel{
		opts:   opts,
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), sweepTick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sweepTickMsg:
		return m, tea.Batch(m.sweep(), sweepTick())

	case reminder.FiredMsg:
		if len(msg.Fired) > 0 {
			m.banner = fmt.Sprintf("⏰ Time to study: %s", msg.Fired[0].Topic)
			if len(msg.Fired) > 1 {
				m.banner += fmt.Sprintf(" (+%d more)", len(msg.Fired)-1)
			}
		}
		// Let the reminders screen refresh its list too.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, tea.Tick(8*time.Second, func(time.Time) tea.Msg {
			return bannerClearMsg{}
		}))

	case bannerClearMsg:
		m.banner = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscHandler); ok {
				if handled, cmd := eh.HandleEsc(); handled {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// sweep runs one reminder pass off the UI goroutine.
func (m AppModel) sweep() tea.Cmd {
	sched := m.opts.Scheduler
	return func() tea.Msg {
		fired := sched.Sweep(time.Now())
		if len(fired) == 0 {
			return nil
		}
		return reminder.FiredMsg{Fired: fired}
	}
}

func sweepTick() tea.Cmd {
	return tea.Tick(reminder.SweepInterval, func(t time.Time) tea.Msg {
		return sweepTickMsg(t)
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)

	var footer string
	if m.banner != "" {
		footer = lipgloss.NewStyle().
			Width(m.width).
			Background(theme.BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Foreground(theme.Accent).
			Bold(true).
			Render("  " + m.banner)
	} else {
		footer = layout.RenderFooter(m.footerHints(active), m.width)
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) headerStatus() string {
	status := ""
	if m.opts.Gateway != nil {
		status = m.opts.Gateway.ModelID()
	} else {
		status = "offline"
	}
	if m.opts.Prefs.Muted() {
		status += "  🔇"
	}
	return status + "  "
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "M", Description: "Mute"},
		{Key: "T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
