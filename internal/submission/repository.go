package submission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	CreateSubmission(s *Submission) error
	CreateAnswers(answers []*Answer) error
	Finalize(id uuid.UUID, at time.Time) error
	// CountCompletedByQuiz counts finalized submissions only.
	CountCompletedByQuiz(quizID uuid.UUID) (int64, error)
	ListCompletedByQuiz(quizID uuid.UUID) ([]*Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateSubmission(s *Submission) error {
	return r.db.Create(s).Error
}

func (r *submissionRepository) CreateAnswers(answers []*Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.Create(&answers).Error
}

func (r *submissionRepository) Finalize(id uuid.UUID, at time.Time) error {
	return r.db.Model(&Submission{}).
		Where("id = ?", id).
		Update("submitted_at", at).Error
}

func (r *submissionRepository) CountCompletedByQuiz(quizID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Submission{}).
		Where("quiz_id = ? AND submitted_at IS NOT NULL", quizID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) ListCompletedByQuiz(quizID uuid.UUID) ([]*Submission, error) {
	var submissions []*Submission
	err := r.db.
		Preload("Answers").
		Where("quiz_id = ? AND submitted_at IS NOT NULL", quizID).
		Order("submitted_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
