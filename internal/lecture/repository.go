package lecture

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LectureRepository interface {
	Create(l *Lecture) error
	// The stage updates write the stage's result and the next status in one
	// row update, so a reader never observes a status ahead of its data.
	UpdateTranscript(id uuid.UUID, transcript datatypes.JSON, status Status) error
	UpdateSummary(id uuid.UUID, summary string, status Status) error
	UpdateStatus(id uuid.UUID, status Status) error
	MarkError(id uuid.UUID, message string) error
	GetByID(id string) (*Lecture, error)
	ListByClass(classID uuid.UUID) ([]*Lecture, error)
}

type lectureRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) LectureRepository {
	return &lectureRepository{db: db}
}

func (r *lectureRepository) Create(l *Lecture) error {
	return r.db.Create(l).Error
}

func (r *lectureRepository) UpdateTranscript(id uuid.UUID, transcript datatypes.JSON, status Status) error {
	return r.db.Model(&Lecture{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"transcript_json": transcript,
			"status":          status,
		}).Error
}

func (r *lectureRepository) UpdateSummary(id uuid.UUID, summary string, status Status) error {
	return r.db.Model(&Lecture{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"summary_md": summary,
			"status":     status,
		}).Error
}

func (r *lectureRepository) UpdateStatus(id uuid.UUID, status Status) error {
	return r.db.Model(&Lecture{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *lectureRepository) MarkError(id uuid.UUID, message string) error {
	return r.db.Model(&Lecture{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        StatusError,
			"error_message": message,
		}).Error
}

func (r *lectureRepository) GetByID(id string) (*Lecture, error) {
	var l Lecture
	if err := r.db.First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *lectureRepository) ListByClass(classID uuid.UUID) ([]*Lecture, error) {
	var lectures []*Lecture
	if err := r.db.
		Where("class_id = ?", classID).
		Order("created_at DESC").
		Find(&lectures).Error; err != nil {
		return nil, err
	}
	return lectures, nil
}
