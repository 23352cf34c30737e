package quizgen

import "fmt"

// bloomLevels maps the requested difficulty to the cognitive-skill levels the
// prompt asks the model to target.
var bloomLevels = map[Difficulty][]string{
	DifficultyEasy:   {"Remember", "Understand"},
	DifficultyMedium: {"Apply", "Analyze"},
	DifficultyHard:   {"Analyze", "Evaluate"},
}

const responseFormat = `{
  "questions": [
    {
      "prompt": "<question text>",
      "options": ["<option A>", "<option B>", "<option C>", "<option D>"],
      "correct_index": 0,
      "rationale": "<brief explanation of the correct answer>",
      "sources": [{"t0": 0.0, "t1": 0.0, "quote": "<short transcript quote, max 180 chars>"}]
    }
  ]
}`

func BuildSystemPrompt(difficulty Difficulty, n int) string {
	levels := bloomLevels[difficulty]
	return fmt.Sprintf(`You generate multiple-choice quizzes from lecture transcripts.

Generate exactly %d questions. Target Bloom levels: %s, %s.

Rules:
1. Only use content present in the transcript segments. Never invent facts.
2. Each question has exactly 4 options and a single correct answer.
3. "correct_index" is the zero-based index of the correct option, between 0 and 3.
4. All options must be similar in length and structure; distractors must be plausible.
5. Ground each question in the transcript with "sources" quoting the relevant span.
6. Output pure, valid JSON only, with no text outside the JSON.

Expected JSON format:

%s`, n, levels[0], levels[1], responseFormat)
}
