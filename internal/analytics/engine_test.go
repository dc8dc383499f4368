package analytics_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/openlearn/classroom/internal/analytics"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/quiz"
	"github.com/openlearn/classroom/internal/user"
)

type fakeUsers map[string]user.User

func (f fakeUsers) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f[id]
	if !ok {
		return user.User{}, errs.NotFound("user not found")
	}
	return u, nil
}

type fixture struct {
	quizzes quiz.Store
	courses *course.MemoryStore
	users   fakeUsers
	engine  *analytics.Engine
}

func newFixture() *fixture {
	f := &fixture{
		quizzes: quiz.NewInMemoryStore(),
		courses: course.NewInMemoryStore(),
		users:   fakeUsers{},
	}
	f.engine = analytics.NewEngine(f.quizzes, f.courses, f.users)
	return f
}

func (f *fixture) addQuiz(id, courseID string, questions int) {
	qs := make([]quiz.Question, questions)
	for i := range qs {
		qs[i] = quiz.Question{
			Prompt:        fmt.Sprintf("q%d", i),
			Options:       []string{"a", "b"},
			CorrectOption: 0,
		}
	}
	_ = f.quizzes.CreateQuiz(context.Background(), quiz.Quiz{
		ID: id, CourseID: courseID, Title: id, Questions: qs,
	})
}

func (f *fixture) addAttempt(quizID, studentID string, score int, at int64) {
	_ = f.quizzes.CreateAttempt(context.Background(), quiz.Attempt{
		ID:     fmt.Sprintf("at-%s-%s-%d", quizID, studentID, at),
		QuizID: quizID, StudentID: studentID, Score: score, SubmittedAt: at,
	})
}

func TestCourseQuizSummariesAverage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addQuiz("q1", "c1", 6)
	f.addAttempt("q1", "s1", 2, 100)
	f.addAttempt("q1", "s2", 4, 200)
	f.addAttempt("q1", "s3", 6, 300)

	out, err := f.engine.CourseQuizSummaries(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d summaries, want 1", len(out))
	}
	s := out[0]
	if s.AvgScore != 4.00 {
		t.Fatalf("AvgScore = %v, want 4.00", s.AvgScore)
	}
	if s.BestScore != 6 || s.TotalAttempts != 3 || s.TotalQuestions != 6 {
		t.Fatalf("summary = %+v", s)
	}
}

func TestCourseQuizSummariesEmpty(t *testing.T) {
	f := newFixture()
	f.addQuiz("q1", "c1", 4)

	out, err := f.engine.CourseQuizSummaries(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	s := out[0]
	if s.TotalAttempts != 0 || s.BestScore != 0 || s.AvgScore != 0 {
		t.Fatalf("summary over zero attempts = %+v", s)
	}
}

func TestQuizStudentRows(t *testing.T) {
	f := newFixture()
	f.users["s1"] = user.User{ID: "s1", Name: "Ada", Email: "ada@example.com"}
	f.users["s2"] = user.User{ID: "s2", Name: "Ben", Email: "ben@example.com"}
	f.addQuiz("q1", "c1", 4)
	f.addAttempt("q1", "s1", 1, 100)
	f.addAttempt("q1", "s2", 2, 200)
	f.addAttempt("q1", "s1", 3, 300)

	total, rows, err := f.engine.QuizStudentRows(context.Background(), "q1")
	if err != nil {
		t.Fatal(err)
	}
	if total != 4 {
		t.Fatalf("totalQuestions = %d, want 4", total)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// first-seen order
	if rows[0].StudentID != "s1" || rows[1].StudentID != "s2" {
		t.Fatalf("unexpected order: %+v", rows)
	}
	if rows[0].Attempts != 2 || rows[0].BestScore != 3 || rows[0].Percentage != 75 {
		t.Fatalf("s1 row = %+v, want attempts 2, best 3, 75%%", rows[0])
	}
	if rows[0].Name != "Ada" || rows[1].Email != "ben@example.com" {
		t.Fatalf("identity not resolved: %+v", rows)
	}
}

func TestCourseProgressSortsAndOmits(t *testing.T) {
	f := newFixture()
	f.addQuiz("q1", "c1", 4)
	f.addQuiz("q2", "c1", 5)
	// inserted out of chronological order on purpose
	f.addAttempt("q1", "s1", 3, 300)
	f.addAttempt("q1", "s1", 1, 500)
	f.addAttempt("q1", "s1", 2, 100)

	progress, err := f.engine.CourseProgress(context.Background(), "c1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(progress) != 1 {
		t.Fatalf("unattempted quiz not omitted: %+v", progress)
	}
	p := progress[0]
	if p.QuizID != "q1" || p.Attempts != 3 || p.BestScore != 3 {
		t.Fatalf("progress = %+v", p)
	}
	if p.LastAttempted != 500 {
		t.Fatalf("LastAttempted = %d, want chronologically last 500", p.LastAttempted)
	}
	if p.Percentage != 75 {
		t.Fatalf("Percentage = %d, want 75", p.Percentage)
	}
}

func TestStudentDashboardZeroAttempts(t *testing.T) {
	f := newFixture()
	dash, err := f.engine.ForStudent(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if dash.QuizzesAttempted != 0 || dash.BestScoreAverage != 0 {
		t.Fatalf("dashboard = %+v, want zeros", dash)
	}
}

func TestStudentDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_ = f.courses.CreateCourse(ctx, course.Course{ID: "c1", Title: "Go", TeacherID: "t1"})
	_ = f.courses.Enroll(ctx, "c1", "s1")

	f.addQuiz("q1", "c1", 4)
	f.addQuiz("q2", "c1", 2)
	f.addAttempt("q1", "s1", 2, 100)
	f.addAttempt("q1", "s1", 3, 200) // best 3/4 = 75
	f.addAttempt("q2", "s1", 1, 300) // best 1/2 = 50

	_ = f.courses.CreateAssignment(ctx, course.Assignment{ID: "a1", CourseID: "c1"})
	_ = f.courses.CreateSubmission(ctx, course.Submission{ID: "sub1", AssignmentID: "a1", StudentID: "s1"})

	dash, err := f.engine.ForStudent(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	want := analytics.StudentDashboard{
		TotalCourses:         1,
		QuizzesAttempted:     2,
		AssignmentsSubmitted: 1,
		BestScoreAverage:     63, // round((75+50)/2)
	}
	if dash != want {
		t.Fatalf("dashboard = %+v, want %+v", dash, want)
	}
}

func TestStudentDashboardZeroQuestionQuiz(t *testing.T) {
	f := newFixture()
	f.addQuiz("q1", "c1", 0)
	f.addAttempt("q1", "s1", 0, 100)

	dash, err := f.engine.ForStudent(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if dash.BestScoreAverage != 0 || dash.QuizzesAttempted != 1 {
		t.Fatalf("dashboard = %+v, want avg 0 and 1 attempted", dash)
	}
}

func TestTeacherDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_ = f.courses.CreateCourse(ctx, course.Course{ID: "c1", Title: "Go", TeacherID: "t1", CreatedAt: 2})
	_ = f.courses.CreateCourse(ctx, course.Course{ID: "c2", Title: "SQL", TeacherID: "t1", CreatedAt: 1})
	_ = f.courses.Enroll(ctx, "c1", "s1")
	_ = f.courses.Enroll(ctx, "c1", "s2")
	f.addQuiz("q1", "c1", 4)
	_ = f.courses.CreateAssignment(ctx, course.Assignment{ID: "a1", CourseID: "c1"})
	_ = f.courses.CreateSubmission(ctx, course.Submission{ID: "sub1", AssignmentID: "a1", StudentID: "s1"})

	dash, err := f.engine.ForTeacher(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if dash.TotalCourses != 2 {
		t.Fatalf("TotalCourses = %d, want 2", dash.TotalCourses)
	}
	byTitle := map[string]analytics.CourseAnalytics{}
	for _, a := range dash.Analytics {
		byTitle[a.CourseTitle] = a
	}
	goCourse := byTitle["Go"]
	if goCourse.EnrolledStudents != 2 || goCourse.QuizCount != 1 ||
		goCourse.AssignmentCount != 1 || goCourse.SubmissionsReceived != 1 {
		t.Fatalf("Go analytics = %+v", goCourse)
	}
	// course with no quizzes or assignments reports zero counts
	sqlCourse := byTitle["SQL"]
	if sqlCourse.QuizCount != 0 || sqlCourse.SubmissionsReceived != 0 {
		t.Fatalf("SQL analytics = %+v, want zero counts", sqlCourse)
	}

	// idempotent with no intervening writes
	again, err := f.engine.ForTeacher(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dash, again) {
		t.Fatalf("dashboard not idempotent:\nfirst  %+v\nsecond %+v", dash, again)
	}
}

func TestQuizzesWithBestAttempt(t *testing.T) {
	f := newFixture()
	f.addQuiz("q1", "c1", 4)
	f.addQuiz("q2", "c1", 3)
	f.addAttempt("q1", "s1", 2, 100)
	f.addAttempt("q1", "s1", 4, 200)
	f.addAttempt("q1", "s2", 1, 300) // someone else's attempt

	out, err := f.engine.QuizzesWithBestAttempt(context.Background(), "c1", "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d quizzes, want 2", len(out))
	}
	byID := map[string]analytics.QuizWithAttempt{}
	for _, q := range out {
		byID[q.ID] = q
	}
	if byID["q1"].Attempt == nil || byID["q1"].Attempt.Score != 4 {
		t.Fatalf("q1 = %+v, want best attempt 4", byID["q1"])
	}
	if byID["q2"].Attempt != nil {
		t.Fatalf("q2 = %+v, want nil attempt", byID["q2"])
	}
}
