package quiz_test

import (
	"context"
	"testing"

	"github.com/openlearn/classroom/internal/auth"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/quiz"
)

// fakeOwners approves only the configured teacher for any course.
type fakeOwners struct{ teacherID string }

func (f fakeOwners) RequireOwner(_ context.Context, actor auth.Actor, courseID string) (course.Course, error) {
	if actor.ID != f.teacherID {
		return course.Course{}, errs.Unauthorized("you cannot modify this course")
	}
	return course.Course{ID: courseID, TeacherID: f.teacherID}, nil
}

func validQuestions() []quiz.Question {
	return []quiz.Question{
		{Prompt: "a?", Options: []string{"x", "y"}, CorrectOption: 1},
		{Prompt: "b?", Options: []string{"x", "y", "z"}, CorrectOption: 0},
	}
}

func TestCreateValidatesCorrectOption(t *testing.T) {
	ctx := context.Background()
	svc := quiz.NewService(quiz.NewInMemoryStore(), fakeOwners{teacherID: "t1"})
	teacher := auth.Actor{ID: "t1", Role: auth.RoleTeacher}

	bad := validQuestions()
	bad[1].CorrectOption = 3
	_, err := svc.Create(ctx, teacher, "c1", "Algebra", bad)
	if !errs.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}

	bad = validQuestions()
	bad[0].CorrectOption = -1
	if _, err := svc.Create(ctx, teacher, "c1", "Algebra", bad); !errs.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}

	if _, err := svc.Create(ctx, teacher, "c1", "", validQuestions()); !errs.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput for missing title, got %v", err)
	}
}

func TestCreateRejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewInMemoryStore()
	svc := quiz.NewService(store, fakeOwners{teacherID: "t1"})

	intruder := auth.Actor{ID: "t2", Role: auth.RoleTeacher}
	_, err := svc.Create(ctx, intruder, "c1", "Algebra", validQuestions())
	if !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	// no mutation happened
	qs, err := store.ListByCourse(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 0 {
		t.Fatalf("quiz was persisted despite Unauthorized: %v", qs)
	}
}

func TestSubmitRecordsAttempt(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewInMemoryStore()
	svc := quiz.NewService(store, fakeOwners{teacherID: "t1"})
	teacher := auth.Actor{ID: "t1", Role: auth.RoleTeacher}
	student := auth.Actor{ID: "s1", Role: auth.RoleStudent}

	q, err := svc.Create(ctx, teacher, "c1", "Algebra", validQuestions())
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Submit(ctx, student, q.ID, map[int]int{0: 1, 1: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 1 || res.TotalQuestions != 2 {
		t.Fatalf("SubmitResult = %+v, want score 1 of 2", res)
	}

	// resubmission adds a second attempt, it never overwrites
	if _, err := svc.Submit(ctx, student, q.ID, map[int]int{0: 1, 1: 0}); err != nil {
		t.Fatal(err)
	}
	attempts, err := store.AttemptsByQuizAndStudent(ctx, q.ID, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(attempts))
	}
	if best, _ := quiz.BestScore(attempts); best != 2 {
		t.Fatalf("best score = %d, want 2", best)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	svc := quiz.NewService(quiz.NewInMemoryStore(), fakeOwners{teacherID: "t1"})
	student := auth.Actor{ID: "s1", Role: auth.RoleStudent}
	_, err := svc.Submit(context.Background(), student, "missing", map[int]int{})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSubmitTeacherRejected(t *testing.T) {
	svc := quiz.NewService(quiz.NewInMemoryStore(), fakeOwners{teacherID: "t1"})
	teacher := auth.Actor{ID: "t1", Role: auth.RoleTeacher}
	_, err := svc.Submit(context.Background(), teacher, "q1", map[int]int{})
	if !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestGetForStudentStripsAnswers(t *testing.T) {
	ctx := context.Background()
	store := quiz.NewInMemoryStore()
	svc := quiz.NewService(store, fakeOwners{teacherID: "t1"})
	teacher := auth.Actor{ID: "t1", Role: auth.RoleTeacher}

	q, err := svc.Create(ctx, teacher, "c1", "Algebra", validQuestions())
	if err != nil {
		t.Fatal(err)
	}
	title, views, err := svc.GetForStudent(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if title != "Algebra" || len(views) != 2 {
		t.Fatalf("got title %q with %d questions", title, len(views))
	}
	for i, v := range views {
		if v.Prompt == "" || len(v.Options) == 0 {
			t.Fatalf("question %d lost its prompt or options: %+v", i, v)
		}
	}
}
