package class

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassRepository interface {
	Create(c *Class) error
	FindByID(id uuid.UUID) (*Class, error)
	FindAllByInstructor(instructorID uuid.UUID) ([]*Class, error)
	Stats(classID uuid.UUID) (*ClassStats, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(c *Class) error {
	return r.db.Create(c).Error
}

func (r *classRepository) FindByID(id uuid.UUID) (*Class, error) {
	var c Class
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *classRepository) FindAllByInstructor(instructorID uuid.UUID) ([]*Class, error) {
	var classes []*Class
	if err := r.db.
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) Stats(classID uuid.UUID) (*ClassStats, error) {
	stats := &ClassStats{}

	if err := r.db.Table("lectures").
		Where("class_id = ?", classID).
		Count(&stats.LectureCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Table("quizzes").
		Joins("JOIN lectures ON lectures.id = quizzes.lecture_id").
		Where("lectures.class_id = ?", classID).
		Count(&stats.QuizCount).Error; err != nil {
		return nil, err
	}

	completed := func() *gorm.DB {
		return r.db.Table("submissions").
			Joins("JOIN quizzes ON quizzes.id = submissions.quiz_id").
			Joins("JOIN lectures ON lectures.id = quizzes.lecture_id").
			Where("lectures.class_id = ? AND submissions.submitted_at IS NOT NULL", classID)
	}

	if err := completed().Count(&stats.SubmissionCount).Error; err != nil {
		return nil, err
	}

	// Anonymous submitters (NULL label) count as one student, not zero.
	if err := completed().
		Distinct("COALESCE(submissions.student_label, '')").
		Count(&stats.StudentCount).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
