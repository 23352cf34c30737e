package lecture

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Status is the lecture's processing state. Transitions are one-directional:
// transcribing -> summarizing -> quizzing -> ready, with error reachable from
// any non-terminal state. ready and error are terminal; a retry is a new
// Lecture, never an in-place restart.
type Status string

const (
	StatusTranscribing Status = "transcribing"
	StatusSummarizing  Status = "summarizing"
	StatusQuizzing     Status = "quizzing"
	StatusReady        Status = "ready"
	StatusError        Status = "error"
)

type Lecture struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"class_id"`
	Title          string         `gorm:"type:text;not null" json:"title"`
	Status         Status         `gorm:"type:text;not null" json:"status"`
	TranscriptJSON datatypes.JSON `gorm:"type:jsonb" json:"transcript,omitempty"`
	SummaryMD      string         `gorm:"type:text" json:"summary_md,omitempty"`
	ErrorMessage   *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
