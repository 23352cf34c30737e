package container

import (
	"context"
	"log"
	"os"

	"github.com/quizforge/quizforge-lambda/internal/auth"
	"github.com/quizforge/quizforge-lambda/internal/class"
	"github.com/quizforge/quizforge-lambda/internal/config"
	"github.com/quizforge/quizforge-lambda/internal/lecture"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"github.com/quizforge/quizforge-lambda/internal/submission"
)

type Container struct {
	LectureContainer    *lecture.LectureContainer
	QuizContainer       *quiz.QuizContainer
	SubmissionContainer *submission.SubmissionContainer
	ClassContainer      *class.ClassContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	quizContainer := quiz.NewQuizContainer(config.DB)
	lectureContainer := lecture.NewLectureContainer(config.DB, quizContainer.Repo)
	submissionContainer := submission.NewSubmissionContainer(config.DB, quizContainer.Repo)
	classContainer := class.NewClassContainer(config.DB)

	return &Container{
		LectureContainer:    lectureContainer,
		QuizContainer:       quizContainer,
		SubmissionContainer: submissionContainer,
		ClassContainer:      classContainer,
	}
}
