package submission

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one student's grading pass over a published quiz. SubmittedAt
// stays null until every answer row is written; rows without it are abandoned
// passes and never count toward completed-submission statistics.
type Submission struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	StudentLabel *string    `gorm:"type:text" json:"student_label,omitempty"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	Answers []Answer `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// Answer records one chosen option. IsCorrect is computed once at write time
// and never re-derived.
type Answer struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	QuestionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	ChosenIndex  int       `gorm:"not null" json:"chosen_index"`
	IsCorrect    bool      `gorm:"not null" json:"is_correct"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
