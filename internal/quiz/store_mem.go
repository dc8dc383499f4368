package quiz

import (
	"context"
	"sync"

	"github.com/openlearn/classroom/internal/errs"
)

// memoryStore backs tests and offline demos.
type memoryStore struct {
	mu       sync.RWMutex
	quizzes  map[string]Quiz
	attempts []Attempt
}

func NewInMemoryStore() Store {
	return &memoryStore{quizzes: map[string]Quiz{}}
}

func (m *memoryStore) CreateQuiz(_ context.Context, q Quiz) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = q
	return nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[id]
	if !ok {
		return Quiz{}, errs.NotFound("quiz not found")
	}
	return q, nil
}

func (m *memoryStore) ListByCourse(_ context.Context, courseID string) ([]Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Quiz{}
	for _, q := range m.quizzes {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) CountByCourse(ctx context.Context, courseID string) (int, error) {
	qs, err := m.ListByCourse(ctx, courseID)
	return len(qs), err
}

func (m *memoryStore) CreateAttempt(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memoryStore) AttemptsByQuiz(_ context.Context, quizID string) ([]Attempt, error) {
	return m.filter(func(a Attempt) bool { return a.QuizID == quizID }), nil
}

func (m *memoryStore) AttemptsByQuizAndStudent(_ context.Context, quizID, studentID string) ([]Attempt, error) {
	return m.filter(func(a Attempt) bool { return a.QuizID == quizID && a.StudentID == studentID }), nil
}

func (m *memoryStore) AttemptsByStudent(_ context.Context, studentID string) ([]Attempt, error) {
	return m.filter(func(a Attempt) bool { return a.StudentID == studentID }), nil
}

func (m *memoryStore) filter(keep func(Attempt) bool) []Attempt {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Attempt{}
	for _, a := range m.attempts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
