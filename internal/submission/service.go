package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
)

type GradeResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

type ResultEntry struct {
	SubmissionID uuid.UUID  `json:"submissionId"`
	StudentLabel *string    `json:"studentLabel,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt"`
	Score        int        `json:"score"`
	Total        int        `json:"total"`
}

type QuizResults struct {
	QuizID      uuid.UUID     `json:"quizId"`
	Completed   int64         `json:"completed"`
	Submissions []ResultEntry `json:"submissions"`
}

type GradeService interface {
	// Submit grades a choice array against the quiz's questions in canonical
	// order, persists the submission with its answers, and finalizes it.
	// Choices are matched positionally: choices[i] answers question i.
	Submit(ctx context.Context, slug string, choices []int, studentLabel *string) (*GradeResult, error)
	// Results lists the finalized submissions of a quiz with their scores,
	// oldest first. In-flight grading passes are excluded.
	Results(ctx context.Context, quizID string) (*QuizResults, error)
}

type gradeService struct {
	quizzes quiz.QuizRepository
	repo    SubmissionRepository
}

func NewService(quizzes quiz.QuizRepository, repo SubmissionRepository) GradeService {
	return &gradeService{quizzes: quizzes, repo: repo}
}

func (s *gradeService) Submit(ctx context.Context, slug string, choices []int, studentLabel *string) (*GradeResult, error) {
	log := config.WithContext(ctx)

	q, err := s.quizzes.GetPublishedBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("load quiz by slug: %w", err)
	}
	if q == nil {
		// Unpublished quizzes are never gradable, even with a guessed slug.
		return nil, apperr.NewNotFound("quiz not found")
	}

	questions, err := s.quizzes.ListQuestionsByQuiz(q.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	if len(choices) != len(questions) {
		return nil, apperr.NewValidation("expected %d choices, received %d", len(questions), len(choices)).
			WithDetail("expected", len(questions)).
			WithDetail("received", len(choices))
	}
	for i, chosen := range choices {
		if chosen < 0 || chosen > 3 {
			return nil, apperr.NewValidation("invalid choice at index %d", i).
				WithDetail("choice", chosen).
				WithDetail("expected", "integer in [0,3]")
		}
	}

	sub := &Submission{
		ID:           uuid.New(),
		QuizID:       q.ID,
		StudentLabel: studentLabel,
	}
	if err := s.repo.CreateSubmission(sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	correct := 0
	answers := make([]*Answer, 0, len(questions))
	for i, question := range questions {
		isCorrect := choices[i] == question.CorrectIndex
		if isCorrect {
			correct++
		}
		answers = append(answers, &Answer{
			ID:           uuid.New(),
			SubmissionID: sub.ID,
			QuestionID:   question.ID,
			ChosenIndex:  choices[i],
			IsCorrect:    isCorrect,
		})
	}
	if err := s.repo.CreateAnswers(answers); err != nil {
		return nil, fmt.Errorf("persist answers: %w", err)
	}

	// The submission only counts as completed once every answer is in.
	if err := s.repo.Finalize(sub.ID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("finalize submission: %w", err)
	}

	log.Infof("Graded submission %s for quiz %s: %d/%d", sub.ID, q.ID, correct, len(questions))
	return &GradeResult{Score: correct, Total: len(questions)}, nil
}

func (s *gradeService) Results(ctx context.Context, quizID string) (*QuizResults, error) {
	q, err := s.quizzes.GetByID(quizID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	if q == nil {
		return nil, apperr.NewNotFound("quiz not found")
	}

	count, err := s.repo.CountCompletedByQuiz(q.ID)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	submissions, err := s.repo.ListCompletedByQuiz(q.ID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	results := &QuizResults{QuizID: q.ID, Completed: count, Submissions: []ResultEntry{}}
	for _, sub := range submissions {
		score := 0
		for _, a := range sub.Answers {
			if a.IsCorrect {
				score++
			}
		}
		results.Submissions = append(results.Submissions, ResultEntry{
			SubmissionID: sub.ID,
			StudentLabel: sub.StudentLabel,
			SubmittedAt:  sub.SubmittedAt,
			Score:        score,
			Total:        len(sub.Answers),
		})
	}
	return results, nil
}
