package quiz

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openlearn/classroom/internal/auth"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/errs"
)

// OwnershipChecker gates teacher mutations on course ownership. The
// course service satisfies it.
type OwnershipChecker interface {
	RequireOwner(ctx context.Context, actor auth.Actor, courseID string) (course.Course, error)
}

type Service struct {
	store   Store
	courses OwnershipChecker
}

func NewService(store Store, courses OwnershipChecker) *Service {
	return &Service{store: store, courses: courses}
}

// Create validates the question list and persists the quiz under the
// actor's course. Every correctOption must index into its options.
func (s *Service) Create(ctx context.Context, actor auth.Actor, courseID, title string, questions []Question) (Quiz, error) {
	if strings.TrimSpace(title) == "" || len(questions) == 0 {
		return Quiz{}, errs.InvalidInput("title and questions are required")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return Quiz{}, errs.Invalidf("question %d: prompt required", i)
		}
		if len(q.Options) < 2 {
			return Quiz{}, errs.Invalidf("question %d: at least two options required", i)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return Quiz{}, errs.Invalidf("question %d: correctOption out of range", i)
		}
	}
	if _, err := s.courses.RequireOwner(ctx, actor, courseID); err != nil {
		return Quiz{}, err
	}
	q := Quiz{
		ID:        "q-" + uuid.NewString(),
		CourseID:  courseID,
		Title:     title,
		Questions: questions,
	}
	if err := s.store.CreateQuiz(ctx, q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// GetForStudent returns the quiz questions with answer keys stripped.
func (s *Service) GetForStudent(ctx context.Context, quizID string) (string, []QuestionView, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return "", nil, err
	}
	views := make([]QuestionView, len(q.Questions))
	for i, qq := range q.Questions {
		views[i] = qq.View()
	}
	return q.Title, views, nil
}

// Analysis returns the full quiz, answer keys included, to the owning
// teacher.
func (s *Service) Analysis(ctx context.Context, actor auth.Actor, quizID string) (Quiz, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return Quiz{}, err
	}
	if _, err := s.courses.RequireOwner(ctx, actor, q.CourseID); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// ListForCourse returns the course's quizzes, answer keys included.
// Callers gate access before use.
func (s *Service) ListForCourse(ctx context.Context, courseID string) ([]Quiz, error) {
	return s.store.ListByCourse(ctx, courseID)
}

// Submit grades the answers against the quiz and records an attempt.
// Attempts are additive; resubmission never overwrites earlier scores.
func (s *Service) Submit(ctx context.Context, actor auth.Actor, quizID string, answers map[int]int) (SubmitResult, error) {
	if !actor.IsStudent() {
		return SubmitResult{}, errs.Unauthorized("only students can attempt quizzes")
	}
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return SubmitResult{}, err
	}
	score := Grade(q.Questions, answers)
	a := Attempt{
		ID:          "at-" + uuid.NewString(),
		QuizID:      quizID,
		StudentID:   actor.ID,
		Score:       score,
		SubmittedAt: time.Now().Unix(),
	}
	if err := s.store.CreateAttempt(ctx, a); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Score: score, TotalQuestions: len(q.Questions)}, nil
}
