package submission_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/quiz"
	"github.com/quizforge/quizforge-lambda/internal/submission"
	"gorm.io/datatypes"
)

type fakeQuizRepo struct {
	quiz      *quiz.Quiz
	questions []*quiz.Question
}

func (f *fakeQuizRepo) CreateWithQuestions(_ context.Context, q *quiz.Quiz, questions []*quiz.Question) error {
	f.quiz = q
	f.questions = questions
	return nil
}

func (f *fakeQuizRepo) GetByID(id string) (*quiz.Quiz, error) { return f.quiz, nil }

func (f *fakeQuizRepo) GetPublishedBySlug(slug string) (*quiz.Quiz, error) {
	if f.quiz != nil && f.quiz.IsPublished && f.quiz.PublicSlug != nil && *f.quiz.PublicSlug == slug {
		return f.quiz, nil
	}
	return nil, nil
}

func (f *fakeQuizRepo) ListQuestionsByQuiz(uuid.UUID) ([]*quiz.Question, error) {
	return f.questions, nil
}

func (f *fakeQuizRepo) SetPublication(_ uuid.UUID, slug string) error {
	f.quiz.PublicSlug = &slug
	f.quiz.IsPublished = true
	return nil
}

type fakeSubmissionRepo struct {
	submissions map[string]*submission.Submission
	answers     []*submission.Answer
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[string]*submission.Submission{}}
}

func (f *fakeSubmissionRepo) CreateSubmission(s *submission.Submission) error {
	f.submissions[s.ID.String()] = s
	return nil
}

func (f *fakeSubmissionRepo) CreateAnswers(answers []*submission.Answer) error {
	f.answers = append(f.answers, answers...)
	for _, a := range answers {
		if s, ok := f.submissions[a.SubmissionID.String()]; ok {
			s.Answers = append(s.Answers, *a)
		}
	}
	return nil
}

func (f *fakeSubmissionRepo) Finalize(id uuid.UUID, at time.Time) error {
	s, ok := f.submissions[id.String()]
	if !ok {
		return errors.New("submission not found")
	}
	s.SubmittedAt = &at
	return nil
}

func (f *fakeSubmissionRepo) CountCompletedByQuiz(uuid.UUID) (int64, error) {
	var count int64
	for _, s := range f.submissions {
		if s.SubmittedAt != nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubmissionRepo) ListCompletedByQuiz(uuid.UUID) ([]*submission.Submission, error) {
	var out []*submission.Submission
	for _, s := range f.submissions {
		if s.SubmittedAt != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) finalized() []*submission.Submission {
	out, _ := f.ListCompletedByQuiz(uuid.Nil)
	return out
}

const testSlug = "abc12345"

// publishedQuiz seeds a published quiz whose question i has correct index i%4.
func publishedQuiz(t *testing.T, numQuestions int) *fakeQuizRepo {
	t.Helper()
	slug := testSlug
	repo := &fakeQuizRepo{
		quiz: &quiz.Quiz{
			ID:           uuid.New(),
			Title:        "Entropy",
			NumQuestions: numQuestions,
			IsPublished:  true,
			PublicSlug:   &slug,
		},
	}
	for i := 0; i < numQuestions; i++ {
		options, _ := json.Marshal([]string{"A", "B", "C", "D"})
		repo.questions = append(repo.questions, &quiz.Question{
			ID:           uuid.New(),
			QuizID:       repo.quiz.ID,
			Prompt:       "Question",
			Options:      datatypes.JSON(options),
			CorrectIndex: i % 4,
			OrderIndex:   i,
		})
	}
	return repo
}

func TestSubmitFullScore(t *testing.T) {
	ctx := context.Background()
	quizzes := publishedQuiz(t, 4)
	subs := newFakeSubmissionRepo()
	service := submission.NewService(quizzes, subs)

	label := "alice"
	result, err := service.Submit(ctx, testSlug, []int{0, 1, 2, 3}, &label)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if result.Score != 4 || result.Total != 4 {
		t.Errorf("expected 4/4, got %d/%d", result.Score, result.Total)
	}
	if len(subs.finalized()) != 1 {
		t.Fatalf("expected exactly one finalized submission, got %d", len(subs.finalized()))
	}
	if len(subs.answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(subs.answers))
	}
	for i, a := range subs.answers {
		if !a.IsCorrect {
			t.Errorf("answer %d should be correct", i)
		}
	}
}

func TestSubmitGrading(t *testing.T) {
	ctx := context.Background()
	quizzes := publishedQuiz(t, 4)
	subs := newFakeSubmissionRepo()
	service := submission.NewService(quizzes, subs)

	// Correct answers are 0,1,2,3; two of these match.
	choices := []int{0, 1, 3, 2}
	result, err := service.Submit(ctx, testSlug, choices, nil)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Score != 2 || result.Total != 4 {
		t.Errorf("expected 2/4, got %d/%d", result.Score, result.Total)
	}

	// isCorrect must hold by direct recomputation against persisted data.
	for i, a := range subs.answers {
		want := choices[i] == quizzes.questions[i].CorrectIndex
		if a.IsCorrect != want {
			t.Errorf("answer %d isCorrect = %v, want %v", i, a.IsCorrect, want)
		}
		if a.ChosenIndex != choices[i] {
			t.Errorf("answer %d chosenIndex = %d, want %d", i, a.ChosenIndex, choices[i])
		}
	}
}

func TestSubmitLengthMismatch(t *testing.T) {
	ctx := context.Background()
	quizzes := publishedQuiz(t, 4)
	subs := newFakeSubmissionRepo()
	service := submission.NewService(quizzes, subs)

	_, err := service.Submit(ctx, testSlug, []int{0, 1}, nil)
	if err == nil {
		t.Fatal("expected length-mismatch rejection")
	}

	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Details["expected"] != 4 || ve.Details["received"] != 2 {
		t.Errorf("error must report expected and received counts, got %v", ve.Details)
	}
	if len(subs.finalized()) != 0 {
		t.Error("a rejected submission must never be finalized")
	}
}

func TestSubmitOutOfRangeChoice(t *testing.T) {
	ctx := context.Background()
	quizzes := publishedQuiz(t, 4)
	subs := newFakeSubmissionRepo()
	service := submission.NewService(quizzes, subs)

	_, err := service.Submit(ctx, testSlug, []int{0, 1, 2, 99}, nil)
	if err == nil {
		t.Fatal("expected out-of-range rejection")
	}

	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Message, "index 3") {
		t.Errorf("error must identify the offending index: %s", ve.Message)
	}
	if ve.Details["choice"] != 99 {
		t.Errorf("error must carry the offending value, got %v", ve.Details)
	}
	if len(subs.finalized()) != 0 {
		t.Error("a rejected submission must never be finalized")
	}
}

func TestSubmitUnknownOrUnpublishedSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownSlug", func(t *testing.T) {
		service := submission.NewService(publishedQuiz(t, 2), newFakeSubmissionRepo())
		_, err := service.Submit(ctx, "zzzzzzzz", []int{0, 1}, nil)
		var nf *apperr.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("UnpublishedQuiz", func(t *testing.T) {
		quizzes := publishedQuiz(t, 2)
		quizzes.quiz.IsPublished = false
		service := submission.NewService(quizzes, newFakeSubmissionRepo())

		_, err := service.Submit(ctx, testSlug, []int{0, 1}, nil)
		var nf *apperr.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("unpublished quiz must not be gradable, got %v", err)
		}
	})
}

func TestSubmitAllowsRepeatedStudentLabels(t *testing.T) {
	ctx := context.Background()
	quizzes := publishedQuiz(t, 2)
	subs := newFakeSubmissionRepo()
	service := submission.NewService(quizzes, subs)

	label := "bob"
	for i := 0; i < 3; i++ {
		if _, err := service.Submit(ctx, testSlug, []int{0, 1}, &label); err != nil {
			t.Fatalf("submission %d failed: %v", i, err)
		}
	}
	if count, _ := subs.CountCompletedByQuiz(quizzes.quiz.ID); count != 3 {
		t.Errorf("expected 3 completed submissions, got %d", count)
	}
}

func TestResults(t *testing.T) {
	ctx := context.Background()
	quizzes := publishedQuiz(t, 4)
	subs := newFakeSubmissionRepo()
	service := submission.NewService(quizzes, subs)

	// Question i expects choice i%4, so this scores 2/4.
	label := "alice"
	if _, err := service.Submit(ctx, testSlug, []int{0, 1, 0, 0}, &label); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := service.Submit(ctx, testSlug, []int{0, 1, 2, 3}, nil); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	results, err := service.Results(ctx, quizzes.quiz.ID.String())
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if results.Completed != 2 {
		t.Errorf("expected 2 completed submissions, got %d", results.Completed)
	}
	if len(results.Submissions) != 2 {
		t.Fatalf("expected 2 result entries, got %d", len(results.Submissions))
	}

	byScore := map[int]int{}
	for _, entry := range results.Submissions {
		if entry.Total != 4 {
			t.Errorf("expected total 4, got %d", entry.Total)
		}
		if entry.SubmittedAt == nil {
			t.Errorf("result entry %s has no submission time", entry.SubmissionID)
		}
		byScore[entry.Score]++
	}
	if byScore[2] != 1 || byScore[4] != 1 {
		t.Errorf("expected one 2/4 and one 4/4 entry, got %v", byScore)
	}
}

func TestResultsUnknownQuiz(t *testing.T) {
	service := submission.NewService(&fakeQuizRepo{}, newFakeSubmissionRepo())

	_, err := service.Results(context.Background(), uuid.NewString())
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}
