package reminder

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adedotun/medprep/internal/store"
)

// SweepInterval is how often the scheduler checks the clock.
const SweepInterval = 30 * time.Second

const dateLayout = "2006-01-02"

// Notifier receives fired reminders. The TUI implementation rings the
// terminal bell and raises an in-app banner.
type Notifier interface {
	Notify(r store.Reminder) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(r store.Reminder) error

func (f NotifierFunc) Notify(r store.Reminder) error { return f(r) }

// FiredMsg is broadcast through the UI message loop after a sweep that
// fired at least one reminder.
type FiredMsg struct {
	Fired []store.Reminder
}

// Scheduler fires due reminders against the persisted list and trigger
// ledger. It holds no timer of its own; the caller drives Sweep on the
// UI tick.
type Scheduler struct {
	repo     *store.ReminderRepo
	notifier Notifier
}

// NewScheduler creates a Scheduler over the given repo and notifier.
func NewScheduler(repo *store.ReminderRepo, notifier Notifier) *Scheduler {
	return &Scheduler{repo: repo, notifier: notifier}
}

// Add validates and persists a new reminder, deriving its ID from the
// creation time.
func (s *Scheduler) Add(topic, at, frequency string, now time.Time) (store.Reminder, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return store.Reminder{}, fmt.Errorf("reminder topic is required")
	}
	if _, err := time.Parse("15:04", at); err != nil {
		return store.Reminder{}, fmt.Errorf("invalid reminder time %q: %w", at, err)
	}
	switch frequency {
	case store.FrequencyOnce, store.FrequencyDaily, store.FrequencyWeekly:
	default:
		return store.Reminder{}, fmt.Errorf("invalid frequency %q", frequency)
	}

	rem := store.Reminder{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Topic:     topic,
		Time:      at,
		Frequency: frequency,
		CreatedAt: now,
	}
	if err := s.repo.Add(rem); err != nil {
		return store.Reminder{}, err
	}
	return rem, nil
}

// Remove deletes a reminder and its ledger entry.
func (s *Scheduler) Remove(id string) error {
	return s.repo.Remove(id)
}

// All lists the persisted reminders.
func (s *Scheduler) All() []store.Reminder {
	return s.repo.All()
}

// Sweep fires every reminder due at now and returns the ones that
// fired. A reminder is due when its HH:MM matches the current minute
// and its frequency allows another trigger: once fires if it never has
// and is then deleted; daily fires at most once per calendar day;
// weekly fires when it never has or at least seven days have passed.
// Each entry is handled in isolation so one failing notification or
// write cannot suppress the rest of the sweep.
func (s *Scheduler) Sweep(now time.Time) []store.Reminder {
	currentTime := now.Format("15:04")
	today := now.Format(dateLayout)
	triggers := s.repo.Triggers()

	var fired []store.Reminder
	for _, rem := range s.repo.All() {
		if rem.Time != currentTime {
			continue
		}
		if !s.due(rem, triggers[rem.ID], today) {
			continue
		}
		if s.fire(rem, today) {
			fired = append(fired, rem)
		}
	}
	return fired
}

func (s *Scheduler) due(rem store.Reminder, lastTriggered, today string) bool {
	switch rem.Frequency {
	case store.FrequencyOnce:
		return lastTriggered == ""
	case store.FrequencyDaily:
		return lastTriggered != today
	case store.FrequencyWeekly:
		if lastTriggered == "" {
			return true
		}
		last, err := time.Parse(dateLayout, lastTriggered)
		if err != nil {
			return true
		}
		current, err := time.Parse(dateLayout, today)
		if err != nil {
			return false
		}
		return current.Sub(last) >= 7*24*time.Hour
	default:
		return false
	}
}

// fire notifies and records one reminder, reporting success. Failures
// are logged and contained.
func (s *Scheduler) fire(rem store.Reminder, today string) bool {
	if err := s.notifier.Notify(rem); err != nil {
		fmt.Fprintf(os.Stderr, "warning: reminder %q failed to notify: %v\n", rem.Topic, err)
		return false
	}
	if err := s.repo.RecordTrigger(rem.ID, today); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record trigger for %q: %v\n", rem.Topic, err)
	}
	if rem.Frequency == store.FrequencyOnce {
		if err := s.repo.Remove(rem.ID); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove fired reminder %q: %v\n", rem.Topic, err)
		}
	}
	return true
}
