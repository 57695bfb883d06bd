package quizgen

import "github.com/adedotun/medprep/internal/llm"

// questionProperties is the schema for a single question object.
var questionProperties = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{
			"type":        "string",
			"description": "The MCCQE1 style multiple-choice question.",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"minItems":    4,
			"maxItems":    5,
			"description": "An array of 4 or 5 possible answers for the question.",
		},
		"correctAnswerIndex": map[string]any{
			"type":        "integer",
			"minimum":     0,
			"description": "The 0-based index of the correct answer in the 'options' array.",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "A detailed explanation of why the correct answer is right and the others are wrong, citing medical principles.",
		},
		"topics": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "An array of 2-4 relevant medical topics or keywords for the question (e.g., 'Cardiology', 'Myocardial Infarction', 'Pharmacology').",
		},
	},
	"required":             []any{"question", "options", "correctAnswerIndex", "explanation", "topics"},
	"additionalProperties": false,
}

// BatchSchema is the schema for a batch generation response: an array of
// questions. The index-in-range invariant is re-checked in Go after
// validation, since it relates two fields.
var BatchSchema = &llm.Schema{
	Name:        "quiz-question-batch",
	Description: "A batch of MCCQE1 practice questions",
	Definition: map[string]any{
		"type":     "array",
		"items":    questionProperties,
		"minItems": 1,
	},
}
