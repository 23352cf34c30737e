package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	// CreateWithQuestions persists the quiz and all its questions in one
	// transaction; a partial question set is never observable.
	CreateWithQuestions(ctx context.Context, q *Quiz, questions []*Question) error
	GetByID(id string) (*Quiz, error)
	GetPublishedBySlug(slug string) (*Quiz, error)
	// ListQuestionsByQuiz returns questions in canonical order (order_index ASC).
	ListQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error)
	SetPublication(id uuid.UUID, slug string) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) CreateWithQuestions(ctx context.Context, q *Quiz, questions []*Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = q.ID
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *quizRepository) GetByID(id string) (*Quiz, error) {
	var q Quiz
	if err := r.db.First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) GetPublishedBySlug(slug string) (*Quiz, error) {
	var q Quiz
	err := r.db.
		Where("public_slug = ? AND is_published = ?", slug, true).
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *quizRepository) ListQuestionsByQuiz(quizID uuid.UUID) ([]*Question, error) {
	var questions []*Question
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) SetPublication(id uuid.UUID, slug string) error {
	return r.db.Model(&Quiz{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"public_slug":  slug,
			"is_published": true,
		}).Error
}
