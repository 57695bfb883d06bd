package store

import (
	"strings"
	"time"
)

const (
	keySavedGuides   = "savedStudyGuides"
	keyStudyProgress = "studyProgress"
)

// SavedGuide is a study guide snapshot saved for offline rereading.
// Videos are not persisted; they are refetched on demand.
type SavedGuide struct {
	Topic   string    `json:"topic"`
	Content string    `json:"content"`
	SavedAt time.Time `json:"savedAt"`
}

// GuideRepo manages saved study guides and per-topic reading progress.
type GuideRepo struct {
	store *Store
}

// NewGuideRepo returns a GuideRepo backed by the store.
func NewGuideRepo(s *Store) *GuideRepo {
	return &GuideRepo{store: s}
}

// All returns the saved guides in save order.
func (r *GuideRepo) All() []SavedGuide {
	var guides []SavedGuide
	r.store.Get(keySavedGuides, &guides)
	return guides
}

// Find returns the saved guide for topic, matched case-insensitively.
func (r *GuideRepo) Find(topic string) (SavedGuide, bool) {
	for _, g := range r.All() {
		if strings.EqualFold(g.Topic, topic) {
			return g, true
		}
	}
	return SavedGuide{}, false
}

// IsSaved reports whether a guide for topic is saved, case-insensitively.
func (r *GuideRepo) IsSaved(topic string) bool {
	_, ok := r.Find(topic)
	return ok
}

// Toggle saves the guide if topic is not saved, or removes it if it is.
// It returns whether the guide is saved after the call.
//
// Removing a guide leaves any reading progress for the topic in place;
// re-saving the guide picks it back up.
func (r *GuideRepo) Toggle(topic, content string) (bool, error) {
	guides := r.All()
	for i, g := range guides {
		if strings.EqualFold(g.Topic, topic) {
			guides = append(guides[:i], guides[i+1:]...)
			return false, r.store.Set(keySavedGuides, guides)
		}
	}
	guides = append(guides, SavedGuide{
		Topic:   topic,
		Content: content,
		SavedAt: time.Now(),
	})
	return true, r.store.Set(keySavedGuides, guides)
}

// Progress returns the completed section titles for topic.
func (r *GuideRepo) Progress(topic string) []string {
	all := r.allProgress()
	return all[topic]
}

// ToggleSection flips the completion state of the exact section title for
// topic and writes the progress map through.
func (r *GuideRepo) ToggleSection(topic, section string) error {
	all := r.allProgress()
	sections := all[topic]

	for i, s := range sections {
		if s == section {
			all[topic] = append(sections[:i], sections[i+1:]...)
			return r.store.Set(keyStudyProgress, all)
		}
	}

	all[topic] = append(sections, section)
	return r.store.Set(keyStudyProgress, all)
}

func (r *GuideRepo) allProgress() map[string][]string {
	progress := map[string][]string{}
	r.store.Get(keyStudyProgress, &progress)
	return progress
}
