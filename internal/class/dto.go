package class

import (
	"time"

	"github.com/google/uuid"
)

type CreateClassDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Semester    string `json:"semester"`
	Year        *int   `json:"year"`
}

// ClassStats aggregates what instructors see on the dashboard. Submission
// counts cover finalized submissions only; abandoned grading passes are
// excluded.
type ClassStats struct {
	LectureCount    int64 `json:"lectureCount"`
	QuizCount       int64 `json:"quizCount"`
	SubmissionCount int64 `json:"submissionCount"`
	StudentCount    int64 `json:"studentCount"`
}

type ClassResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Semester    string    `json:"semester,omitempty"`
	Year        *int      `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ClassStats
}
