package quiz

import "context"

type Store interface {
	CreateQuiz(ctx context.Context, q Quiz) error
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	ListByCourse(ctx context.Context, courseID string) ([]Quiz, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)

	CreateAttempt(ctx context.Context, a Attempt) error
	AttemptsByQuiz(ctx context.Context, quizID string) ([]Attempt, error)
	AttemptsByQuizAndStudent(ctx context.Context, quizID, studentID string) ([]Attempt, error)
	AttemptsByStudent(ctx context.Context, studentID string) ([]Attempt, error)
}
