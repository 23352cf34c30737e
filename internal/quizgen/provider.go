package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
	"github.com/quizforge/quizforge-lambda/internal/transcribe"
	"google.golang.org/genai"
)

// Provider generates a validated quiz from transcript segments.
type Provider interface {
	Generate(ctx context.Context, segments []transcribe.Segment, difficulty Difficulty, n int) (*GeneratedQuiz, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: "gemini-2.0-flash"}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, segments []transcribe.Segment, difficulty Difficulty, n int) (*GeneratedQuiz, error) {
	log := config.WithContext(ctx)

	payload, err := json.Marshal(map[string]interface{}{"segments": segments})
	if err != nil {
		return nil, apperr.NewAdapter(apperr.KindShape, "quizgen", "encode transcript segments", err)
	}

	prompt := BuildSystemPrompt(difficulty, n) + "\n\n" + string(payload)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		log.WithError(err).Error("Failed to generate quiz content")
		return nil, apperr.NewAdapter(apperr.KindTransient, "quizgen", "generate content", err)
	}

	raw := result.Text()
	log.Debugf("Raw model quiz response:\n%s", raw)

	if raw == "" {
		return nil, apperr.NewAdapter(apperr.KindShape, "quizgen", "empty model response", nil)
	}

	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")

	var quiz GeneratedQuiz
	if err := json.Unmarshal([]byte(clean), &quiz); err != nil {
		log.WithError(err).Errorf("Failed to decode quiz JSON. Cleaned content:\n%s", clean)
		return nil, apperr.NewAdapter(apperr.KindShape, "quizgen", "decode quiz JSON", err)
	}

	if err := Validate(&quiz, n); err != nil {
		return nil, err
	}

	log.Infof("Generated %d questions", len(quiz.Questions))
	return &quiz, nil
}

// Validate enforces the strict schema contract on untrusted generated output:
// exactly n questions, each with exactly 4 options and a correct_index in
// [0,3]. Any violation is a hard pipeline failure, never a truncated quiz.
func Validate(quiz *GeneratedQuiz, n int) error {
	if quiz == nil {
		return apperr.NewAdapter(apperr.KindShape, "quizgen", "nil quiz payload", nil)
	}
	if len(quiz.Questions) != n {
		return apperr.NewAdapter(apperr.KindShape, "quizgen",
			fmt.Sprintf("expected %d questions, model returned %d", n, len(quiz.Questions)), nil)
	}
	for i, q := range quiz.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return apperr.NewAdapter(apperr.KindShape, "quizgen",
				fmt.Sprintf("question %d has an empty prompt", i), nil)
		}
		if len(q.Options) != 4 {
			return apperr.NewAdapter(apperr.KindShape, "quizgen",
				fmt.Sprintf("question %d has %d options, expected exactly 4", i, len(q.Options)), nil)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return apperr.NewAdapter(apperr.KindShape, "quizgen",
				fmt.Sprintf("question %d has correct_index %d outside [0,3]", i, q.CorrectIndex), nil)
		}
	}
	return nil
}
