package class

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	Subject      string    `gorm:"type:text" json:"subject,omitempty"`
	Semester     string    `gorm:"type:text" json:"semester,omitempty"`
	Year         *int      `json:"year,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
