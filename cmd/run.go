package cmd

import (
	"fmt"
	"os"

	"github.com/adedotun/medprep/internal/app"
	"github.com/adedotun/medprep/internal/guide"
	"github.com/adedotun/medprep/internal/llm"
	"github.com/adedotun/medprep/internal/quizgen"
	"github.com/adedotun/medprep/internal/reminder"
	"github.com/adedotun/medprep/internal/sound"
	"github.com/adedotun/medprep/internal/speech"
	"github.com/adedotun/medprep/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	prefs := store.NewPrefsRepo(st)
	player := speech.NewPlayer()

	opts := app.Options{
		History:   store.NewHistoryRepo(st),
		Guides:    store.NewGuideRepo(st),
		Prefs:     prefs,
		Cues:      sound.New(player, prefs.Muted),
		Scheduler: reminder.NewScheduler(store.NewReminderRepo(st), bellNotifier()),
	}

	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	} else {
		gateway, err := llm.NewGateway(ctx, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider failed to start:", err)
			fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		} else {
			opts.Gateway = gateway
			opts.QuizGen = quizgen.New(gateway)
			opts.GuideSvc = guide.New(gateway)
			opts.Speech = speech.NewCache(gateway, player)
		}
	}

	return app.Run(opts)
}

// bellNotifier rings the terminal bell on fired reminders. The in-app
// banner is raised separately off the sweep message.
func bellNotifier() reminder.Notifier {
	return reminder.NotifierFunc(func(store.Reminder) error {
		fmt.Fprint(os.Stderr, "\a")
		return nil
	})
}
