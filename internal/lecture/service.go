package lecture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"github.com/quizforge/quizforge-lambda/internal/quizgen"
	"github.com/quizforge/quizforge-lambda/internal/summarize"
	"github.com/quizforge/quizforge-lambda/internal/transcribe"
	"gorm.io/datatypes"
)

type PipelineInput struct {
	Audio        []byte
	Mime         string
	Filename     string
	Title        string
	Difficulty   quizgen.Difficulty
	NumQuestions int
	ClassID      uuid.UUID
}

type PipelineResult struct {
	LectureID uuid.UUID `json:"lectureId"`
	QuizID    uuid.UUID `json:"quizId"`
}

type PipelineService interface {
	// Process drives a new lecture through transcribe -> summarize -> quiz
	// generation -> ready, persisting each stage's result together with the
	// next status. On any stage failure the lecture lands in the error state
	// with the failure message recorded, and the error is returned.
	Process(ctx context.Context, input PipelineInput) (*PipelineResult, error)
	GetLecture(ctx context.Context, id string) (*Lecture, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]*Lecture, error)
}

type pipelineService struct {
	lectures       LectureRepository
	quizzes        quiz.QuizRepository
	transcriber    transcribe.Provider
	summarizer     summarize.Provider
	generator      quizgen.Provider
	adapterTimeout time.Duration
}

func NewPipelineService(
	lectures LectureRepository,
	quizzes quiz.QuizRepository,
	transcriber transcribe.Provider,
	summarizer summarize.Provider,
	generator quizgen.Provider,
	adapterTimeout time.Duration,
) PipelineService {
	return &pipelineService{
		lectures:       lectures,
		quizzes:        quizzes,
		transcriber:    transcriber,
		summarizer:     summarizer,
		generator:      generator,
		adapterTimeout: adapterTimeout,
	}
}

func (s *pipelineService) Process(ctx context.Context, input PipelineInput) (*PipelineResult, error) {
	log := config.WithContext(ctx)

	l := &Lecture{
		ID:      uuid.New(),
		ClassID: input.ClassID,
		Title:   input.Title,
		Status:  StatusTranscribing,
	}
	if err := s.lectures.Create(l); err != nil {
		return nil, fmt.Errorf("create lecture: %w", err)
	}
	log.Infof("Lecture %s created, starting pipeline", l.ID)

	transcript, err := s.transcribeStage(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, l.ID, err)
	}
	transcriptJSON, err := json.Marshal(transcript)
	if err != nil {
		return nil, s.fail(ctx, l.ID, fmt.Errorf("encode transcript: %w", err))
	}
	if err := s.lectures.UpdateTranscript(l.ID, datatypes.JSON(transcriptJSON), StatusSummarizing); err != nil {
		return nil, s.fail(ctx, l.ID, fmt.Errorf("persist transcript: %w", err))
	}
	log.Infof("Lecture %s transcribed (%d segments)", l.ID, len(transcript.Segments))

	summary, err := s.summarizeStage(ctx, transcript.Segments)
	if err != nil {
		return nil, s.fail(ctx, l.ID, err)
	}
	if err := s.lectures.UpdateSummary(l.ID, summary, StatusQuizzing); err != nil {
		return nil, s.fail(ctx, l.ID, fmt.Errorf("persist summary: %w", err))
	}
	log.Infof("Lecture %s summarized", l.ID)

	quizID, err := s.quizStage(ctx, l.ID, input, transcript.Segments)
	if err != nil {
		return nil, s.fail(ctx, l.ID, err)
	}
	if err := s.lectures.UpdateStatus(l.ID, StatusReady); err != nil {
		return nil, s.fail(ctx, l.ID, fmt.Errorf("persist ready status: %w", err))
	}
	log.Infof("Lecture %s ready, quiz %s", l.ID, quizID)

	return &PipelineResult{LectureID: l.ID, QuizID: quizID}, nil
}

func (s *pipelineService) transcribeStage(ctx context.Context, input PipelineInput) (*transcribe.Transcript, error) {
	stageCtx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()

	transcript, err := s.transcriber.Transcribe(stageCtx, input.Audio, input.Mime, input.Filename)
	if err != nil {
		return nil, err
	}
	if len(transcript.Segments) == 0 {
		return nil, apperr.NewAdapter(apperr.KindShape, "transcribe", "backend returned an empty transcript", nil)
	}
	return transcript, nil
}

func (s *pipelineService) summarizeStage(ctx context.Context, segments []transcribe.Segment) (string, error) {
	stageCtx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()

	return s.summarizer.Summarize(stageCtx, segments)
}

func (s *pipelineService) quizStage(ctx context.Context, lectureID uuid.UUID, input PipelineInput, segments []transcribe.Segment) (uuid.UUID, error) {
	stageCtx, cancel := context.WithTimeout(ctx, s.adapterTimeout)
	defer cancel()

	generated, err := s.generator.Generate(stageCtx, segments, input.Difficulty, input.NumQuestions)
	if err != nil {
		return uuid.Nil, err
	}
	// Generated content is untrusted regardless of which provider produced
	// it; re-check the schema before anything is persisted.
	if err := quizgen.Validate(generated, input.NumQuestions); err != nil {
		return uuid.Nil, err
	}

	q := &quiz.Quiz{
		ID:           uuid.New(),
		LectureID:    lectureID,
		Title:        input.Title,
		Difficulty:   input.Difficulty,
		NumQuestions: input.NumQuestions,
	}
	questions := make([]*quiz.Question, 0, len(generated.Questions))
	for i, gq := range generated.Questions {
		question, err := quiz.NewQuestion(q.ID, gq, i)
		if err != nil {
			return uuid.Nil, fmt.Errorf("build question %d: %w", i, err)
		}
		questions = append(questions, question)
	}

	if err := s.quizzes.CreateWithQuestions(ctx, q, questions); err != nil {
		return uuid.Nil, fmt.Errorf("persist quiz: %w", err)
	}
	return q.ID, nil
}

// fail records the error state best-effort and returns the original error.
// If the store itself is the failure point the mark may not land; the caller
// still gets the stage error either way.
func (s *pipelineService) fail(ctx context.Context, id uuid.UUID, stageErr error) error {
	log := config.WithContext(ctx)
	log.WithError(stageErr).Errorf("Pipeline failed for lecture %s", id)

	if err := s.lectures.MarkError(id, stageErr.Error()); err != nil {
		log.WithError(err).Errorf("Could not mark lecture %s as errored", id)
	}
	return stageErr
}

func (s *pipelineService) ListByClass(ctx context.Context, classID uuid.UUID) ([]*Lecture, error) {
	lectures, err := s.lectures.ListByClass(classID)
	if err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

func (s *pipelineService) GetLecture(ctx context.Context, id string) (*Lecture, error) {
	l, err := s.lectures.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("load lecture: %w", err)
	}
	if l == nil {
		return nil, apperr.NewNotFound("lecture not found")
	}
	return l, nil
}
