package store

import "time"

const keyQuizHistory = "quizHistory"

// QuizResult is one completed quiz, as persisted in history.
type QuizResult struct {
	Score int       `json:"score"`
	Total int       `json:"total"`
	Level string    `json:"level"`
	Date  time.Time `json:"date"`
}

// HistoryRepo manages the persisted quiz history list.
type HistoryRepo struct {
	store *Store
}

// NewHistoryRepo returns a HistoryRepo backed by the store.
func NewHistoryRepo(s *Store) *HistoryRepo {
	return &HistoryRepo{store: s}
}

// All returns the stored quiz results, most recent last. A missing or
// corrupt entry yields an empty list.
func (r *HistoryRepo) All() []QuizResult {
	var results []QuizResult
	r.store.Get(keyQuizHistory, &results)
	return results
}

// Append adds a result to the history and writes it through.
func (r *HistoryRepo) Append(result QuizResult) error {
	results := r.All()
	results = append(results, result)
	return r.store.Set(keyQuizHistory, results)
}

// Clear removes the whole history.
func (r *HistoryRepo) Clear() error {
	return r.store.Remove(keyQuizHistory)
}
