package analytics

import (
	"context"
	"math"
	"sort"

	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/quiz"
	"github.com/openlearn/classroom/internal/user"
)

// QuizStore is the slice of the quiz store the engine reads from.
type QuizStore interface {
	GetQuiz(ctx context.Context, id string) (quiz.Quiz, error)
	ListByCourse(ctx context.Context, courseID string) ([]quiz.Quiz, error)
	CountByCourse(ctx context.Context, courseID string) (int, error)
	AttemptsByQuiz(ctx context.Context, quizID string) ([]quiz.Attempt, error)
	AttemptsByQuizAndStudent(ctx context.Context, quizID, studentID string) ([]quiz.Attempt, error)
	AttemptsByStudent(ctx context.Context, studentID string) ([]quiz.Attempt, error)
}

// CourseStore is the slice of the course store the engine reads from.
type CourseStore interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]course.Course, error)
	ListEnrolled(ctx context.Context, studentID string) ([]course.Course, error)
	CountEnrolled(ctx context.Context, courseID string) (int, error)
	CountAssignments(ctx context.Context, courseID string) (int, error)
	CountSubmissionsForCourse(ctx context.Context, courseID string) (int, error)
	CountSubmissionsByStudent(ctx context.Context, studentID string) (int, error)
}

// UserDirectory resolves student identities for per-student rows.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// Engine composes scoring results with enrollment and submission counts
// into the dashboard summaries. It holds no state and never writes.
type Engine struct {
	quizzes QuizStore
	courses CourseStore
	users   UserDirectory
}

func NewEngine(quizzes QuizStore, courses CourseStore, users UserDirectory) *Engine {
	return &Engine{quizzes: quizzes, courses: courses, users: users}
}

// CourseQuizSummaries returns PerQuiz aggregates for every quiz in a
// course.
func (e *Engine) CourseQuizSummaries(ctx context.Context, courseID string) ([]QuizSummary, error) {
	quizzes, err := e.quizzes.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		attempts, err := e.quizzes.AttemptsByQuiz(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, summarizeQuiz(q, attempts))
	}
	return out, nil
}

func summarizeQuiz(q quiz.Quiz, attempts []quiz.Attempt) QuizSummary {
	best, _ := quiz.BestScore(attempts)
	avg := 0.0
	if len(attempts) > 0 {
		sum := 0
		for _, a := range attempts {
			sum += a.Score
		}
		avg = round2(float64(sum) / float64(len(attempts)))
	}
	return QuizSummary{
		QuizID:         q.ID,
		Title:          q.Title,
		TotalQuestions: len(q.Questions),
		TotalAttempts:  len(attempts),
		BestScore:      best,
		AvgScore:       avg,
	}
}

// QuizStudentRows groups a quiz's attempts by student, in first-seen
// order, with each student's attempt count, best score and percentage.
func (e *Engine) QuizStudentRows(ctx context.Context, quizID string) (int, []StudentQuizRow, error) {
	q, err := e.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return 0, nil, err
	}
	attempts, err := e.quizzes.AttemptsByQuiz(ctx, quizID)
	if err != nil {
		return 0, nil, err
	}
	sortAttempts(attempts)

	total := len(q.Questions)
	index := map[string]int{}
	rows := []StudentQuizRow{}
	for _, a := range attempts {
		i, seen := index[a.StudentID]
		if !seen {
			u, err := e.users.GetByID(ctx, a.StudentID)
			if err != nil {
				return 0, nil, err
			}
			index[a.StudentID] = len(rows)
			rows = append(rows, StudentQuizRow{StudentID: a.StudentID, Name: u.Name, Email: u.Email})
			i = len(rows) - 1
		}
		rows[i].Attempts++
		if a.Score > rows[i].BestScore {
			rows[i].BestScore = a.Score
		}
	}
	for i := range rows {
		rows[i].Percentage = percentage(rows[i].BestScore, total)
	}
	return total, rows, nil
}

// CourseProgress reports, per quiz of the course the student has
// attempted, best score and the timestamp of the chronologically last
// attempt. Attempts are sorted explicitly; retrieval order is not
// trusted.
func (e *Engine) CourseProgress(ctx context.Context, courseID, studentID string) ([]ProgressRow, error) {
	quizzes, err := e.quizzes.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	progress := []ProgressRow{}
	for _, q := range quizzes {
		attempts, err := e.quizzes.AttemptsByQuizAndStudent(ctx, q.ID, studentID)
		if err != nil {
			return nil, err
		}
		if len(attempts) == 0 {
			continue
		}
		sortAttempts(attempts)
		best, _ := quiz.BestScore(attempts)
		progress = append(progress, ProgressRow{
			QuizID:         q.ID,
			Title:          q.Title,
			Attempts:       len(attempts),
			BestScore:      best,
			TotalQuestions: len(q.Questions),
			Percentage:     percentage(best, len(q.Questions)),
			LastAttempted:  attempts[len(attempts)-1].SubmittedAt,
		})
	}
	return progress, nil
}

// ForStudent computes the student dashboard: enrolled courses, distinct
// quizzes attempted, submissions handed in and the mean best-score
// percentage over attempted quizzes.
func (e *Engine) ForStudent(ctx context.Context, studentID string) (StudentDashboard, error) {
	attempts, err := e.quizzes.AttemptsByStudent(ctx, studentID)
	if err != nil {
		return StudentDashboard{}, err
	}

	bestByQuiz := map[string]int{}
	order := []string{}
	for _, a := range attempts {
		if best, ok := bestByQuiz[a.QuizID]; !ok || a.Score > best {
			if !ok {
				order = append(order, a.QuizID)
			}
			bestByQuiz[a.QuizID] = a.Score
		}
	}

	// mean of the unrounded per-quiz percentages, rounded once at the end
	totalPct := 0.0
	for _, quizID := range order {
		q, err := e.quizzes.GetQuiz(ctx, quizID)
		if err != nil {
			return StudentDashboard{}, err
		}
		if n := len(q.Questions); n > 0 {
			totalPct += float64(bestByQuiz[quizID]) / float64(n) * 100
		}
	}
	avg := 0
	if len(order) > 0 {
		avg = int(math.Round(totalPct / float64(len(order))))
	}

	enrolled, err := e.courses.ListEnrolled(ctx, studentID)
	if err != nil {
		return StudentDashboard{}, err
	}
	subs, err := e.courses.CountSubmissionsByStudent(ctx, studentID)
	if err != nil {
		return StudentDashboard{}, err
	}

	return StudentDashboard{
		TotalCourses:         len(enrolled),
		QuizzesAttempted:     len(bestByQuiz),
		AssignmentsSubmitted: subs,
		BestScoreAverage:     avg,
	}, nil
}

// ForTeacher aggregates per-course enrollment, quiz, assignment and
// submission counts across the teacher's courses. Pure read; calling it
// twice with no intervening writes yields identical output.
func (e *Engine) ForTeacher(ctx context.Context, teacherID string) (TeacherDashboard, error) {
	courses, err := e.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return TeacherDashboard{}, err
	}
	out := TeacherDashboard{TotalCourses: len(courses), Analytics: []CourseAnalytics{}}
	for _, c := range courses {
		enrolled, err := e.courses.CountEnrolled(ctx, c.ID)
		if err != nil {
			return TeacherDashboard{}, err
		}
		quizzes, err := e.quizzes.CountByCourse(ctx, c.ID)
		if err != nil {
			return TeacherDashboard{}, err
		}
		assignments, err := e.courses.CountAssignments(ctx, c.ID)
		if err != nil {
			return TeacherDashboard{}, err
		}
		received, err := e.courses.CountSubmissionsForCourse(ctx, c.ID)
		if err != nil {
			return TeacherDashboard{}, err
		}
		out.Analytics = append(out.Analytics, CourseAnalytics{
			CourseID:            c.ID,
			CourseTitle:         c.Title,
			EnrolledStudents:    enrolled,
			QuizCount:           quizzes,
			AssignmentCount:     assignments,
			SubmissionsReceived: received,
		})
	}
	return out, nil
}

// QuizzesWithBestAttempt annotates each quiz of a course with the
// student's best score, for the enrolled course-detail view.
func (e *Engine) QuizzesWithBestAttempt(ctx context.Context, courseID, studentID string) ([]QuizWithAttempt, error) {
	quizzes, err := e.quizzes.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]QuizWithAttempt, 0, len(quizzes))
	for _, q := range quizzes {
		attempts, err := e.quizzes.AttemptsByQuizAndStudent(ctx, q.ID, studentID)
		if err != nil {
			return nil, err
		}
		item := QuizWithAttempt{ID: q.ID, Title: q.Title, TotalQuestions: len(q.Questions)}
		if best, ok := quiz.BestScore(attempts); ok {
			item.Attempt = &AttemptBrief{Score: best}
		}
		out = append(out, item)
	}
	return out, nil
}

// percentage guards the zero-question edge case: a quiz with no
// questions reports 0 rather than dividing by zero.
func percentage(best, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(best) / float64(totalQuestions) * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortAttempts(attempts []quiz.Attempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].SubmittedAt < attempts[j].SubmittedAt
	})
}
