package quiz

import (
	"context"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
)

// slugLength gives an unguessable URL-safe token with negligible collision
// probability at practical scale.
const slugLength = 8

type PublicQuestion struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type PublicQuiz struct {
	Slug      string           `json:"slug"`
	Title     string           `json:"title"`
	Questions []PublicQuestion `json:"questions"`
}

type QuizService interface {
	// Publish mints a fresh public slug, flips the quiz visible and returns
	// the shareable URL. Publishing again rotates the slug.
	Publish(ctx context.Context, quizID string) (string, error)
	// GetPublished loads a published quiz and its questions in canonical
	// order, keyed by public slug.
	GetPublished(ctx context.Context, slug string) (*PublicQuiz, error)
}

type quizService struct {
	repo    QuizRepository
	baseURL string
}

func NewService(repo QuizRepository, baseURL string) QuizService {
	return &quizService{
		repo:    repo,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *quizService) Publish(ctx context.Context, quizID string) (string, error) {
	log := config.WithContext(ctx)

	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return "", fmt.Errorf("load quiz: %w", err)
	}
	if q == nil {
		return "", apperr.NewNotFound("quiz not found")
	}

	slug, err := gonanoid.New(slugLength)
	if err != nil {
		return "", fmt.Errorf("mint slug: %w", err)
	}

	if err := s.repo.SetPublication(q.ID, slug); err != nil {
		return "", fmt.Errorf("publish quiz: %w", err)
	}

	log.Infof("Published quiz %s under slug %s", q.ID, slug)
	return s.baseURL + "/q/" + slug, nil
}

func (s *quizService) GetPublished(ctx context.Context, slug string) (*PublicQuiz, error) {
	q, err := s.repo.GetPublishedBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("load quiz by slug: %w", err)
	}
	if q == nil {
		return nil, apperr.NewNotFound("quiz not found")
	}

	questions, err := s.repo.ListQuestionsByQuiz(q.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	public := &PublicQuiz{
		Slug:  slug,
		Title: q.Title,
	}
	for _, question := range questions {
		options, err := question.OptionList()
		if err != nil {
			return nil, fmt.Errorf("decode options of question %s: %w", question.ID, err)
		}
		public.Questions = append(public.Questions, PublicQuestion{
			ID:           question.ID.String(),
			Prompt:       question.Prompt,
			Options:      options,
			CorrectIndex: question.CorrectIndex,
		})
	}
	return public, nil
}
