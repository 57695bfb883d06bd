package quizgen

import "fmt"

// levelDescriptors shade the generation prompt per difficulty level.
var levelDescriptors = map[string]string{
	"beginner":     "Favor classic presentations and foundational knowledge; keep distractors clearly separable.",
	"intermediate": "Mix classic and moderately atypical presentations; distractors should reflect plausible clinical reasoning errors.",
	"advanced":     "Favor atypical presentations, multi-step management decisions, and close distractors that test fine discrimination.",
}

// buildBatchPrompt asks for count unique questions at the given level.
func buildBatchPrompt(count int, level string) string {
	prompt := fmt.Sprintf(`Generate %d unique, high-quality multiple-choice questions (MCQs) for the Medical Council of Canada Qualifying Examination Part I (MCCQE1). The questions should cover a range of topics including internal medicine, surgery, pediatrics, psychiatry, and ethics. Ensure the format is a clinical vignette followed by a single best answer question. For each question, also provide a list of relevant medical topics/keywords.`, count)

	if desc, ok := levelDescriptors[level]; ok {
		prompt += "\n\nDifficulty: " + level + ". " + desc
	}
	return prompt
}

// buildFeedbackPrompt asks why one specific option is wrong.
func buildFeedbackPrompt(question, incorrectAnswer string) string {
	return fmt.Sprintf(`For the following medical question: %q, please explain in a single, concise sentence why the answer choice %q is incorrect. Focus only on the error in that specific option.`, question, incorrectAnswer)
}
