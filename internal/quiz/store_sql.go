package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/openlearn/classroom/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return errs.Internal("encode questions", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id,course_id,title,questions_json) VALUES ($1,$2,$3,$4)`,
		q.ID, q.CourseID, q.Title, string(qj))
	if err != nil {
		return errs.Internal("create quiz", err)
	}
	return nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,course_id,title,questions_json FROM quizzes WHERE id=$1`, id)
	return scanQuiz(row)
}

func (s *SQLStore) ListByCourse(ctx context.Context, courseID string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,course_id,title,questions_json FROM quizzes WHERE course_id=$1`, courseID)
	if err != nil {
		return nil, errs.Internal("list quizzes", err)
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal("list quizzes", err)
	}
	return out, nil
}

func (s *SQLStore) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quizzes WHERE course_id=$1`, courseID).Scan(&n)
	if err != nil {
		return 0, errs.Internal("count quizzes", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (Quiz, error) {
	var q Quiz
	var qj string
	if err := row.Scan(&q.ID, &q.CourseID, &q.Title, &qj); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, errs.NotFound("quiz not found")
		}
		return Quiz{}, errs.Internal("scan quiz", err)
	}
	if err := json.Unmarshal([]byte(qj), &q.Questions); err != nil {
		return Quiz{}, errs.Internal("decode questions", err)
	}
	return q, nil
}

func (s *SQLStore) CreateAttempt(ctx context.Context, a Attempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id,quiz_id,student_id,score,submitted_at) VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.QuizID, a.StudentID, a.Score, a.SubmittedAt)
	if err != nil {
		return errs.Internal("create attempt", err)
	}
	return nil
}

func (s *SQLStore) AttemptsByQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	return s.listAttempts(ctx,
		`SELECT id,quiz_id,student_id,score,submitted_at FROM quiz_attempts WHERE quiz_id=$1 ORDER BY submitted_at`,
		quizID)
}

func (s *SQLStore) AttemptsByQuizAndStudent(ctx context.Context, quizID, studentID string) ([]Attempt, error) {
	return s.listAttempts(ctx,
		`SELECT id,quiz_id,student_id,score,submitted_at FROM quiz_attempts WHERE quiz_id=$1 AND student_id=$2 ORDER BY submitted_at`,
		quizID, studentID)
}

func (s *SQLStore) AttemptsByStudent(ctx context.Context, studentID string) ([]Attempt, error) {
	return s.listAttempts(ctx,
		`SELECT id,quiz_id,student_id,score,submitted_at FROM quiz_attempts WHERE student_id=$1 ORDER BY submitted_at`,
		studentID)
}

func (s *SQLStore) listAttempts(ctx context.Context, query string, args ...any) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.Internal("list attempts", err)
	}
	defer rows.Close()
	out := []Attempt{}
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.StudentID, &a.Score, &a.SubmittedAt); err != nil {
			return nil, errs.Internal("scan attempt", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal("list attempts", err)
	}
	return out, nil
}
