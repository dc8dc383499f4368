package course

import (
	"context"

	"github.com/openlearn/classroom/internal/user"
)

type Store interface {
	CreateCourse(ctx context.Context, c Course) error
	GetCourse(ctx context.Context, id string) (Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]Course, error)

	AddVideo(ctx context.Context, courseID string, item ContentItem) ([]ContentItem, error)
	AddPDF(ctx context.Context, courseID string, item ContentItem) ([]ContentItem, error)

	// Enroll is idempotent: enrolling twice leaves a single membership.
	Enroll(ctx context.Context, courseID, studentID string) error
	IsEnrolled(ctx context.Context, courseID, studentID string) (bool, error)
	ListEnrolled(ctx context.Context, studentID string) ([]Course, error)
	ListEnrolledStudents(ctx context.Context, courseID string) ([]user.Summary, error)
	CountEnrolled(ctx context.Context, courseID string) (int, error)

	CreateAssignment(ctx context.Context, a Assignment) error
	GetAssignment(ctx context.Context, id string) (Assignment, error)
	ListAssignments(ctx context.Context, courseID string) ([]Assignment, error)
	CountAssignments(ctx context.Context, courseID string) (int, error)

	CreateSubmission(ctx context.Context, s Submission) error
	GetSubmission(ctx context.Context, id string) (Submission, error)
	ListSubmissions(ctx context.Context, assignmentID string) ([]Submission, error)
	CountSubmissionsByStudent(ctx context.Context, studentID string) (int, error)
	CountSubmissionsForCourse(ctx context.Context, courseID string) (int, error)
	GradeSubmission(ctx context.Context, id string, marks int, feedback string) (Submission, error)
}
