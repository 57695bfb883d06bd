package store

import "time"

const (
	keyStudyReminders   = "studyReminders"
	keyReminderTriggers = "reminderTriggers"
)

// Reminder frequencies.
const (
	FrequencyOnce   = "once"
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Reminder is a persisted study reminder.
type Reminder struct {
	// ID is the creation time in unix milliseconds, as a string.
	ID string `json:"id"`
	// Topic is what to study.
	Topic string `json:"topic"`
	// Time is the wall-clock firing time, "HH:MM" 24-hour.
	Time string `json:"time"`
	// Frequency is once, daily, or weekly.
	Frequency string `json:"frequency"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReminderRepo manages persisted reminders and their trigger ledger.
// The ledger maps reminder ID to the date it last fired (YYYY-MM-DD),
// kept under its own key so sweep bookkeeping never rewrites the
// reminder list.
type ReminderRepo struct {
	store *Store
}

// NewReminderRepo returns a ReminderRepo backed by the store.
func NewReminderRepo(s *Store) *ReminderRepo {
	return &ReminderRepo{store: s}
}

// All returns the stored reminders in creation order.
func (r *ReminderRepo) All() []Reminder {
	var reminders []Reminder
	r.store.Get(keyStudyReminders, &reminders)
	return reminders
}

// Add appends a reminder and writes the list through.
func (r *ReminderRepo) Add(rem Reminder) error {
	reminders := r.All()
	reminders = append(reminders, rem)
	return r.store.Set(keyStudyReminders, reminders)
}

// Remove deletes the reminder with the given ID, along with its trigger
// ledger entry.
func (r *ReminderRepo) Remove(id string) error {
	reminders := r.All()
	for i, rem := range reminders {
		if rem.ID == id {
			reminders = append(reminders[:i], reminders[i+1:]...)
			break
		}
	}
	if err := r.store.Set(keyStudyReminders, reminders); err != nil {
		return err
	}

	triggers := r.Triggers()
	if _, ok := triggers[id]; ok {
		delete(triggers, id)
		return r.store.Set(keyReminderTriggers, triggers)
	}
	return nil
}

// Triggers returns the trigger ledger: reminder ID → last fired date.
func (r *ReminderRepo) Triggers() map[string]string {
	triggers := map[string]string{}
	r.store.Get(keyReminderTriggers, &triggers)
	return triggers
}

// RecordTrigger stores the date a reminder last fired.
func (r *ReminderRepo) RecordTrigger(id, date string) error {
	triggers := r.Triggers()
	triggers[id] = date
	return r.store.Set(keyReminderTriggers, triggers)
}
