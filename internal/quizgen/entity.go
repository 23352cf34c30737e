package quizgen

import "fmt"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(raw string) (Difficulty, error) {
	switch Difficulty(raw) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(raw), nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", raw)
}

// Source grounds a question in a span of the transcript.
type Source struct {
	T0    float64 `json:"t0"`
	T1    float64 `json:"t1"`
	Quote string  `json:"quote"`
}

// GeneratedQuestion is the untrusted model output for one MCQ; Validate
// enforces its invariants before anything is persisted.
type GeneratedQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Rationale    string   `json:"rationale,omitempty"`
	Sources      []Source `json:"sources,omitempty"`
}

type GeneratedQuiz struct {
	Questions []GeneratedQuestion `json:"questions"`
}
