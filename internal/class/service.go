package class

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/auth"
	"github.com/quizforge/quizforge-lambda/internal/config"
)

var ErrUnauthorized = errors.New("unauthorized")

type ClassService interface {
	Create(ctx context.Context, dto CreateClassDTO) (*ClassResponse, error)
	List(ctx context.Context) ([]*ClassResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ClassResponse, error)
}

type classService struct {
	repo ClassRepository
}

func NewService(repo ClassRepository) ClassService {
	return &classService{repo: repo}
}

func (s *classService) Create(ctx context.Context, dto CreateClassDTO) (*ClassResponse, error) {
	log := config.WithContext(ctx)

	instructorID, err := instructorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if dto.Name == "" {
		return nil, apperr.NewValidation("class name is required")
	}

	c := &Class{
		ID:           uuid.New(),
		InstructorID: instructorID,
		Name:         dto.Name,
		Description:  dto.Description,
		Subject:      dto.Subject,
		Semester:     dto.Semester,
		Year:         dto.Year,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	log.Infof("Class %s created", c.ID)
	return s.toResponse(c, &ClassStats{}), nil
}

func (s *classService) List(ctx context.Context) ([]*ClassResponse, error) {
	instructorID, err := instructorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	classes, err := s.repo.FindAllByInstructor(instructorID)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	responses := make([]*ClassResponse, 0, len(classes))
	for _, c := range classes {
		stats, err := s.repo.Stats(c.ID)
		if err != nil {
			return nil, fmt.Errorf("stats for class %s: %w", c.ID, err)
		}
		responses = append(responses, s.toResponse(c, stats))
	}
	return responses, nil
}

func (s *classService) Get(ctx context.Context, id uuid.UUID) (*ClassResponse, error) {
	instructorID, err := instructorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("load class: %w", err)
	}
	if c == nil || c.InstructorID != instructorID {
		// Another instructor's class is indistinguishable from a missing one.
		return nil, apperr.NewNotFound("class not found")
	}

	stats, err := s.repo.Stats(c.ID)
	if err != nil {
		return nil, fmt.Errorf("stats for class %s: %w", c.ID, err)
	}
	return s.toResponse(c, stats), nil
}

func (s *classService) toResponse(c *Class, stats *ClassStats) *ClassResponse {
	return &ClassResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Subject:     c.Subject,
		Semester:    c.Semester,
		Year:        c.Year,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		ClassStats:  *stats,
	}
}

func instructorFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}
