package course_test

import (
	"context"
	"testing"

	"github.com/openlearn/classroom/internal/auth"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/user"
)

var (
	teacher  = auth.Actor{ID: "t1", Email: "t1@example.com", Role: auth.RoleTeacher}
	intruder = auth.Actor{ID: "t2", Email: "t2@example.com", Role: auth.RoleTeacher}
	student  = auth.Actor{ID: "s1", Email: "s1@example.com", Role: auth.RoleStudent}
)

func newCourse(t *testing.T, svc *course.Service) course.Course {
	t.Helper()
	c, err := svc.Create(context.Background(), teacher, "Go Basics", "An intro course")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCreateCourse(t *testing.T) {
	svc := course.NewService(course.NewInMemoryStore())
	c := newCourse(t, svc)
	if c.TeacherID != teacher.ID {
		t.Fatalf("TeacherID = %q, want %q", c.TeacherID, teacher.ID)
	}
	if _, err := svc.Create(context.Background(), student, "Nope", "students cannot create"); !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	if _, err := svc.Create(context.Background(), teacher, "", ""); !errs.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestAddVideoOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := course.NewService(course.NewInMemoryStore())
	c := newCourse(t, svc)

	item := course.ContentItem{Title: "Intro", URL: "https://cdn.example.com/intro.mp4"}
	_, err := svc.AddVideo(ctx, intruder, c.ID, item)
	if !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	// rejected mutation left the course untouched
	got, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Videos) != 0 {
		t.Fatalf("videos = %v, want none", got.Videos)
	}

	videos, err := svc.AddVideo(ctx, teacher, c.ID, item)
	if err != nil {
		t.Fatal(err)
	}
	if len(videos) != 1 || videos[0].Title != "Intro" {
		t.Fatalf("videos = %v", videos)
	}
}

func TestAddVideoUnknownCourse(t *testing.T) {
	svc := course.NewService(course.NewInMemoryStore())
	_, err := svc.AddVideo(context.Background(), teacher, "missing",
		course.ContentItem{Title: "x", URL: "y"})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestEnrollIdempotent(t *testing.T) {
	ctx := context.Background()
	store := course.NewInMemoryStore()
	svc := course.NewService(store)
	c := newCourse(t, svc)

	if err := svc.Enroll(ctx, student, c.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Enroll(ctx, student, c.ID); err != nil {
		t.Fatal(err)
	}
	n, err := store.CountEnrolled(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("enrolled count = %d, want 1", n)
	}

	if err := svc.Enroll(ctx, student, "missing"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err := svc.Enroll(ctx, teacher, c.ID); !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized for teacher enroll, got %v", err)
	}
}

func TestGetForStudentRequiresEnrollment(t *testing.T) {
	ctx := context.Background()
	svc := course.NewService(course.NewInMemoryStore())
	c := newCourse(t, svc)

	if _, err := svc.GetForStudent(ctx, student, c.ID); !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	if err := svc.Enroll(ctx, student, c.ID); err != nil {
		t.Fatal(err)
	}
	got, err := svc.GetForStudent(ctx, student, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != c.ID {
		t.Fatalf("got course %q, want %q", got.ID, c.ID)
	}
}

func TestSubmitAndGradeAssignment(t *testing.T) {
	ctx := context.Background()
	store := course.NewInMemoryStore()
	store.AddStudent(user.Summary{ID: student.ID, Name: "Ada", Email: student.Email})
	svc := course.NewService(store)
	c := newCourse(t, svc)

	a, err := svc.AddAssignment(ctx, teacher, c.ID, "HW1", "read chapter 1", 1700000000)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SubmitAssignment(ctx, student, "missing", "k"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	sub, err := svc.SubmitAssignment(ctx, student, a.ID, "assignments/a/f.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if sub.Marks != nil {
		t.Fatalf("fresh submission already has marks: %+v", sub)
	}

	// only the owning teacher grades
	if _, err := svc.Grade(ctx, intruder, sub.ID, 9, "good"); !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	graded, err := svc.Grade(ctx, teacher, sub.ID, 9, "good work")
	if err != nil {
		t.Fatal(err)
	}
	if graded.Marks == nil || *graded.Marks != 9 || graded.Feedback != "good work" {
		t.Fatalf("graded = %+v", graded)
	}

	// roster listing resolves the student identity
	subs, err := svc.Submissions(ctx, teacher, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0].Student == nil || subs[0].Student.Name != "Ada" {
		t.Fatalf("submissions = %+v", subs)
	}
	if _, err := svc.Submissions(ctx, intruder, a.ID); !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestAddAssignmentValidation(t *testing.T) {
	svc := course.NewService(course.NewInMemoryStore())
	c := newCourse(t, svc)
	if _, err := svc.AddAssignment(context.Background(), teacher, c.ID, "HW1", "", 0); !errs.IsInvalidInput(err) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestEnrolledStudentsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	store := course.NewInMemoryStore()
	store.AddStudent(user.Summary{ID: student.ID, Name: "Ada", Email: student.Email})
	svc := course.NewService(store)
	c := newCourse(t, svc)
	if err := svc.Enroll(ctx, student, c.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.EnrolledStudents(ctx, intruder, c.ID); !errs.IsUnauthorized(err) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
	students, err := svc.EnrolledStudents(ctx, teacher, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 1 || students[0].Name != "Ada" {
		t.Fatalf("students = %+v", students)
	}
}
