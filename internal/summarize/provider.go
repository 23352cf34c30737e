package summarize

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

const systemPrompt = `You are a concise academic summarizer.
Summarize the lecture transcript you receive into Markdown with exactly these headings: Topics, Key Takeaways, Key Terms.
Keep the summary grounded in the transcript content only. Output Markdown, nothing else.`

// Provider converts transcript segments into a Markdown summary.
type Provider interface {
	Summarize(ctx context.Context, segments []transcribe.Segment) (string, error)
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

func (p *geminiProvider) Summarize(ctx context.Context, segments []transcribe.Segment) (string, error) {
	log := config.WithContext(ctx)

	payload, err := json.Marshal(map[string]interface{}{"segments": segments})
	if err != nil {
		return "", apperr.NewAdapter(apperr.KindShape, "summarize", "encode transcript segments", err)
	}

	prompt := systemPrompt + "\n\n" + string(payload)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("Failed to generate summary")
		return "", apperr.NewAdapter(apperr.KindTransient, "summarize", "generate content", err)
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", apperr.NewAdapter(apperr.KindShape, "summarize", "empty model response", nil)
	}

	log.Infof("Generated summary of %d characters", len(summary))
	return summary, nil
}
