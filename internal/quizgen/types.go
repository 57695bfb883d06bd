package quizgen

// Question is one multiple-choice exam question.
type Question struct {
	// Question is the clinical vignette followed by the question stem.
	Question string `json:"question"`
	// Options holds 4 or 5 answer choices.
	Options []string `json:"options"`
	// CorrectAnswerIndex is the 0-based index of the right option.
	CorrectAnswerIndex int `json:"correctAnswerIndex"`
	// Explanation covers why the correct answer is right and the
	// distractors are wrong.
	Explanation string `json:"explanation"`
	// Topics lists 2-4 relevant medical topics or keywords.
	Topics []string `json:"topics"`
}

// valid checks the structural invariants the schema cannot fully express.
func (q Question) valid() bool {
	if len(q.Options) < 4 || len(q.Options) > 5 {
		return false
	}
	return q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Options)
}
