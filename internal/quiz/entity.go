package quiz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/quizgen"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LectureID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"lecture_id"`
	Title        string             `gorm:"type:text;not null" json:"title"`
	Difficulty   quizgen.Difficulty `gorm:"type:text;not null" json:"difficulty"`
	NumQuestions int                `gorm:"not null" json:"num_questions"`
	IsPublished  bool               `gorm:"not null;default:false" json:"is_published"`
	PublicSlug   *string            `gorm:"type:text;uniqueIndex" json:"public_slug,omitempty"`
	CreatedAt    time.Time          `gorm:"autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type Question struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Prompt       string         `gorm:"type:text;not null" json:"prompt"`
	Options      datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectIndex int            `gorm:"not null" json:"correct_index"`
	Rationale    *string        `gorm:"type:text" json:"rationale,omitempty"`
	Sources      datatypes.JSON `gorm:"type:jsonb" json:"sources,omitempty"`
	OrderIndex   int            `gorm:"not null" json:"order_index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// OptionList decodes the JSONB options column into its four strings.
func (q *Question) OptionList() ([]string, error) {
	var options []string
	if err := json.Unmarshal(q.Options, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// NewQuestion builds a persistable Question from validated generator output.
// orderIndex fixes the canonical question order used by fetch and grading.
func NewQuestion(quizID uuid.UUID, generated quizgen.GeneratedQuestion, orderIndex int) (*Question, error) {
	options, err := json.Marshal(generated.Options)
	if err != nil {
		return nil, err
	}

	question := &Question{
		ID:           uuid.New(),
		QuizID:       quizID,
		Prompt:       generated.Prompt,
		Options:      datatypes.JSON(options),
		CorrectIndex: generated.CorrectIndex,
		OrderIndex:   orderIndex,
	}
	if generated.Rationale != "" {
		rationale := generated.Rationale
		question.Rationale = &rationale
	}
	if len(generated.Sources) > 0 {
		sources, err := json.Marshal(generated.Sources)
		if err != nil {
			return nil, err
		}
		question.Sources = datatypes.JSON(sources)
	}
	return question, nil
}
