package lecture_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/lecture"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"github.com/quizforge/quizforge-lambda/internal/quizgen"
	"github.com/quizforge/quizforge-lambda/internal/transcribe"
	"gorm.io/datatypes"
)

type fakeLectureRepo struct {
	lecture *lecture.Lecture
	// events records every persistence write in order, as "kind:status".
	events     []string
	failUpdate bool
}

func (f *fakeLectureRepo) Create(l *lecture.Lecture) error {
	f.lecture = l
	f.events = append(f.events, "create:"+string(l.Status))
	return nil
}

func (f *fakeLectureRepo) UpdateTranscript(_ uuid.UUID, transcript datatypes.JSON, status lecture.Status) error {
	if f.failUpdate {
		return errors.New("store unavailable")
	}
	f.lecture.TranscriptJSON = transcript
	f.lecture.Status = status
	f.events = append(f.events, "transcript:"+string(status))
	return nil
}

func (f *fakeLectureRepo) UpdateSummary(_ uuid.UUID, summary string, status lecture.Status) error {
	f.lecture.SummaryMD = summary
	f.lecture.Status = status
	f.events = append(f.events, "summary:"+string(status))
	return nil
}

func (f *fakeLectureRepo) UpdateStatus(_ uuid.UUID, status lecture.Status) error {
	f.lecture.Status = status
	f.events = append(f.events, "status:"+string(status))
	return nil
}

func (f *fakeLectureRepo) MarkError(_ uuid.UUID, message string) error {
	f.lecture.Status = lecture.StatusError
	f.lecture.ErrorMessage = &message
	f.events = append(f.events, "error:error")
	return nil
}

func (f *fakeLectureRepo) GetByID(string) (*lecture.Lecture, error) {
	return f.lecture, nil
}

func (f *fakeLectureRepo) ListByClass(uuid.UUID) ([]*lecture.Lecture, error) {
	return []*lecture.Lecture{f.lecture}, nil
}

type fakeQuizRepo struct {
	quiz      *quiz.Quiz
	questions []*quiz.Question
}

func (f *fakeQuizRepo) CreateWithQuestions(_ context.Context, q *quiz.Quiz, questions []*quiz.Question) error {
	f.quiz = q
	f.questions = questions
	return nil
}

func (f *fakeQuizRepo) GetByID(string) (*quiz.Quiz, error)             { return f.quiz, nil }
func (f *fakeQuizRepo) GetPublishedBySlug(string) (*quiz.Quiz, error)  { return nil, nil }
func (f *fakeQuizRepo) SetPublication(uuid.UUID, string) error         { return nil }
func (f *fakeQuizRepo) ListQuestionsByQuiz(uuid.UUID) ([]*quiz.Question, error) {
	return f.questions, nil
}

type stubTranscriber struct {
	transcript *transcribe.Transcript
	err        error
}

func (s *stubTranscriber) Transcribe(context.Context, []byte, string, string) (*transcribe.Transcript, error) {
	return s.transcript, s.err
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(context.Context, []transcribe.Segment) (string, error) {
	return s.summary, s.err
}

type stubGenerator struct {
	quiz *quizgen.GeneratedQuiz
	err  error
}

func (s *stubGenerator) Generate(context.Context, []transcribe.Segment, quizgen.Difficulty, int) (*quizgen.GeneratedQuiz, error) {
	return s.quiz, s.err
}

func generatedQuiz(n int) *quizgen.GeneratedQuiz {
	q := &quizgen.GeneratedQuiz{}
	for i := 0; i < n; i++ {
		q.Questions = append(q.Questions, quizgen.GeneratedQuestion{
			Prompt:       "What did the lecture cover?",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: i % 4,
			Rationale:    "stated directly in the lecture",
			Sources:      []quizgen.Source{{T0: 1, T1: 3, Quote: "as we saw"}},
		})
	}
	return q
}

func testTranscript() *transcribe.Transcript {
	return &transcribe.Transcript{Segments: []transcribe.Segment{
		{T0: 0, T1: 4.2, Text: "welcome to the lecture"},
		{T0: 4.2, T1: 9.8, Text: "today we cover entropy"},
	}}
}

func testInput(n int) lecture.PipelineInput {
	return lecture.PipelineInput{
		Audio:        []byte("fake-audio"),
		Mime:         "audio/mpeg",
		Filename:     "lecture.mp3",
		Title:        "Entropy",
		Difficulty:   quizgen.DifficultyEasy,
		NumQuestions: n,
		ClassID:      uuid.New(),
	}
}

func newService(lr *fakeLectureRepo, qr *fakeQuizRepo, tr transcribe.Provider, sm *stubSummarizer, gen quizgen.Provider) lecture.PipelineService {
	return lecture.NewPipelineService(lr, qr, tr, sm, gen, time.Minute)
}

func TestProcessHappyPath(t *testing.T) {
	lectures := &fakeLectureRepo{}
	quizzes := &fakeQuizRepo{}
	service := newService(
		lectures, quizzes,
		&stubTranscriber{transcript: testTranscript()},
		&stubSummarizer{summary: "## Topics\n- entropy"},
		&stubGenerator{quiz: generatedQuiz(5)},
	)

	result, err := service.Process(context.Background(), testInput(5))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.LectureID == uuid.Nil || result.QuizID == uuid.Nil {
		t.Errorf("expected non-nil lecture and quiz IDs: %+v", result)
	}

	// Status must progress strictly through each stage, with the stage's
	// data written in the same update as its status.
	wantEvents := []string{
		"create:transcribing",
		"transcript:summarizing",
		"summary:quizzing",
		"status:ready",
	}
	if len(lectures.events) != len(wantEvents) {
		t.Fatalf("expected %d persistence events, got %v", len(wantEvents), lectures.events)
	}
	for i, want := range wantEvents {
		if lectures.events[i] != want {
			t.Errorf("event %d = %q, want %q", i, lectures.events[i], want)
		}
	}

	if lectures.lecture.Status != lecture.StatusReady {
		t.Errorf("lecture should end ready, got %s", lectures.lecture.Status)
	}
	if len(lectures.lecture.TranscriptJSON) == 0 {
		t.Error("transcript was not persisted")
	}
	if lectures.lecture.SummaryMD == "" {
		t.Error("summary was not persisted")
	}

	if quizzes.quiz == nil {
		t.Fatal("quiz was not created")
	}
	if quizzes.quiz.ID != result.QuizID {
		t.Errorf("result quiz ID %s does not match persisted quiz %s", result.QuizID, quizzes.quiz.ID)
	}
	if len(quizzes.questions) != 5 {
		t.Fatalf("expected 5 persisted questions, got %d", len(quizzes.questions))
	}
	for i, question := range quizzes.questions {
		if question.OrderIndex != i {
			t.Errorf("question %d has order index %d", i, question.OrderIndex)
		}
		options, err := question.OptionList()
		if err != nil {
			t.Fatalf("question %d options do not decode: %v", i, err)
		}
		if len(options) != 4 {
			t.Errorf("question %d has %d options", i, len(options))
		}
	}
}

func TestProcessTranscriptionFailure(t *testing.T) {
	lectures := &fakeLectureRepo{}
	quizzes := &fakeQuizRepo{}
	service := newService(
		lectures, quizzes,
		&stubTranscriber{err: errors.New("whisper API error (status 400): Invalid file format.")},
		&stubSummarizer{summary: "unused"},
		&stubGenerator{quiz: generatedQuiz(5)},
	)

	_, err := service.Process(context.Background(), testInput(5))
	if err == nil {
		t.Fatal("expected pipeline failure")
	}

	if lectures.lecture.Status != lecture.StatusError {
		t.Errorf("lecture should end in error, got %s", lectures.lecture.Status)
	}
	if lectures.lecture.ErrorMessage == nil || !strings.Contains(*lectures.lecture.ErrorMessage, "Invalid file format") {
		t.Errorf("original error message not preserved: %v", lectures.lecture.ErrorMessage)
	}
	if quizzes.quiz != nil {
		t.Error("no quiz may be created when transcription fails")
	}
}

func TestProcessEmptyTranscript(t *testing.T) {
	lectures := &fakeLectureRepo{}
	service := newService(
		lectures, &fakeQuizRepo{},
		&stubTranscriber{transcript: &transcribe.Transcript{}},
		&stubSummarizer{summary: "unused"},
		&stubGenerator{quiz: generatedQuiz(5)},
	)

	_, err := service.Process(context.Background(), testInput(5))
	if err == nil {
		t.Fatal("expected failure for an empty transcript")
	}
	if lectures.lecture.Status != lecture.StatusError {
		t.Errorf("lecture should end in error, got %s", lectures.lecture.Status)
	}
}

func TestProcessSummarizationFailure(t *testing.T) {
	lectures := &fakeLectureRepo{}
	quizzes := &fakeQuizRepo{}
	service := newService(
		lectures, quizzes,
		&stubTranscriber{transcript: testTranscript()},
		&stubSummarizer{err: errors.New("model quota exceeded")},
		&stubGenerator{quiz: generatedQuiz(5)},
	)

	_, err := service.Process(context.Background(), testInput(5))
	if err == nil {
		t.Fatal("expected pipeline failure")
	}

	if lectures.lecture.Status != lecture.StatusError {
		t.Errorf("lecture should end in error, got %s", lectures.lecture.Status)
	}
	// The transcript stage completed, so its data must have been persisted
	// before the failure.
	if len(lectures.lecture.TranscriptJSON) == 0 {
		t.Error("transcript from the completed stage should be persisted")
	}
	if quizzes.quiz != nil {
		t.Error("no quiz may be created when summarization fails")
	}
}

func TestProcessRejectsInvalidGeneratedQuiz(t *testing.T) {
	cases := []struct {
		name string
		quiz *quizgen.GeneratedQuiz
	}{
		{"TooFewQuestions", generatedQuiz(3)},
		{"WrongOptionCount", func() *quizgen.GeneratedQuiz {
			q := generatedQuiz(5)
			q.Questions[2].Options = []string{"A", "B"}
			return q
		}()},
		{"CorrectIndexOutOfRange", func() *quizgen.GeneratedQuiz {
			q := generatedQuiz(5)
			q.Questions[4].CorrectIndex = 7
			return q
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lectures := &fakeLectureRepo{}
			quizzes := &fakeQuizRepo{}
			service := newService(
				lectures, quizzes,
				&stubTranscriber{transcript: testTranscript()},
				&stubSummarizer{summary: "ok"},
				&stubGenerator{quiz: tc.quiz},
			)

			_, err := service.Process(context.Background(), testInput(5))
			if err == nil {
				t.Fatal("expected pipeline failure for invalid generated quiz")
			}
			if lectures.lecture.Status != lecture.StatusError {
				t.Errorf("lecture should end in error, got %s", lectures.lecture.Status)
			}
			if quizzes.quiz != nil {
				t.Error("no partially-valid quiz may be persisted")
			}
		})
	}
}

func TestProcessPersistenceFailureMarksError(t *testing.T) {
	lectures := &fakeLectureRepo{failUpdate: true}
	service := newService(
		lectures, &fakeQuizRepo{},
		&stubTranscriber{transcript: testTranscript()},
		&stubSummarizer{summary: "ok"},
		&stubGenerator{quiz: generatedQuiz(5)},
	)

	_, err := service.Process(context.Background(), testInput(5))
	if err == nil {
		t.Fatal("expected failure when the store rejects the transcript write")
	}
	if lectures.lecture.Status != lecture.StatusError {
		t.Errorf("best-effort error mark did not land, status %s", lectures.lecture.Status)
	}
}
