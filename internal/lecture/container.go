package lecture

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/quizforge/quizforge-lambda/internal/config"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"github.com/quizforge/quizforge-lambda/internal/quizgen"
	"github.com/quizforge/quizforge-lambda/internal/summarize"
	"github.com/quizforge/quizforge-lambda/internal/transcribe"
	"gorm.io/gorm"
)

type LectureContainer struct {
	Repo    LectureRepository
	Service PipelineService
	Handler *Handler
}

func NewLectureContainer(db *gorm.DB, quizRepo quiz.QuizRepository) *LectureContainer {
	ctx := context.Background()

	transcriber := transcribe.NewOpenAIProvider(os.Getenv("OPENAI_API_KEY"))

	summarizer, err := summarize.NewGeminiProvider(ctx)
	if err != nil {
		log.Fatalf("failed to create summarization provider: %v", err)
	}
	generator, err := quizgen.NewGeminiProvider(ctx)
	if err != nil {
		log.Fatalf("failed to create quiz generation provider: %v", err)
	}

	adapterTimeout := config.Duration(os.Getenv("ADAPTER_TIMEOUT"), 5*time.Minute)

	repo := NewRepository(db)
	service := NewPipelineService(repo, quizRepo, transcriber, summarizer, generator, adapterTimeout)
	handler := NewHandler(service)

	return &LectureContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
