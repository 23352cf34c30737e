package submission

import (
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"gorm.io/gorm"
)

type SubmissionContainer struct {
	Repo    SubmissionRepository
	Service GradeService
	Handler *Handler
}

func NewSubmissionContainer(db *gorm.DB, quizRepo quiz.QuizRepository) *SubmissionContainer {
	repo := NewRepository(db)
	service := NewService(quizRepo, repo)
	handler := NewHandler(service)

	return &SubmissionContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
