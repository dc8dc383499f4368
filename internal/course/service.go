package course

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openlearn/classroom/internal/auth"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/user"
)

// Service wraps the store with the ownership and enrollment rules. Every
// operation takes the acting user explicitly.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

func (s *Service) Create(ctx context.Context, actor auth.Actor, title, description string) (Course, error) {
	if !actor.IsTeacher() {
		return Course{}, errs.Unauthorized("only teachers can create courses")
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return Course{}, errs.InvalidInput("title and description required")
	}
	c := Course{
		ID:          "c-" + uuid.NewString(),
		Title:       title,
		Description: description,
		TeacherID:   actor.ID,
		Videos:      []ContentItem{},
		PDFs:        []ContentItem{},
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.store.CreateCourse(ctx, c); err != nil {
		return Course{}, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	return s.store.GetCourse(ctx, id)
}

// Catalog lists every course for the student browse view.
func (s *Service) Catalog(ctx context.Context) ([]Course, error) {
	return s.store.ListCourses(ctx)
}

func (s *Service) OwnedBy(ctx context.Context, teacherID string) ([]Course, error) {
	return s.store.ListByTeacher(ctx, teacherID)
}

// requireOwner loads the course and rejects any actor other than the
// owning teacher before a mutation or analytics read.
func (s *Service) requireOwner(ctx context.Context, actor auth.Actor, courseID string) (Course, error) {
	c, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return Course{}, err
	}
	if c.TeacherID != actor.ID {
		return Course{}, errs.Unauthorized("you cannot modify this course")
	}
	return c, nil
}

// RequireOwner is the exported form used by collaborating services that
// gate their own operations on course ownership.
func (s *Service) RequireOwner(ctx context.Context, actor auth.Actor, courseID string) (Course, error) {
	return s.requireOwner(ctx, actor, courseID)
}

func (s *Service) AddVideo(ctx context.Context, actor auth.Actor, courseID string, item ContentItem) ([]ContentItem, error) {
	if err := validateContent(item); err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, actor, courseID); err != nil {
		return nil, err
	}
	return s.store.AddVideo(ctx, courseID, item)
}

func (s *Service) AddPDF(ctx context.Context, actor auth.Actor, courseID string, item ContentItem) ([]ContentItem, error) {
	if err := validateContent(item); err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, actor, courseID); err != nil {
		return nil, err
	}
	return s.store.AddPDF(ctx, courseID, item)
}

func validateContent(item ContentItem) error {
	if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.URL) == "" {
		return errs.InvalidInput("title and url required")
	}
	return nil
}

func (s *Service) AddAssignment(ctx context.Context, actor auth.Actor, courseID, title, description string, dueDate int64) (Assignment, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" || dueDate == 0 {
		return Assignment{}, errs.InvalidInput("all fields required")
	}
	if _, err := s.requireOwner(ctx, actor, courseID); err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		ID:          "a-" + uuid.NewString(),
		CourseID:    courseID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}
	if err := s.store.CreateAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) Enroll(ctx context.Context, actor auth.Actor, courseID string) error {
	if !actor.IsStudent() {
		return errs.Unauthorized("only students can enroll")
	}
	if _, err := s.store.GetCourse(ctx, courseID); err != nil {
		return err
	}
	return s.store.Enroll(ctx, courseID, actor.ID)
}

func (s *Service) EnrolledCourses(ctx context.Context, actor auth.Actor) ([]Course, error) {
	return s.store.ListEnrolled(ctx, actor.ID)
}

// GetForStudent returns a course only when the student is enrolled.
func (s *Service) GetForStudent(ctx context.Context, actor auth.Actor, courseID string) (Course, error) {
	ok, err := s.store.IsEnrolled(ctx, courseID, actor.ID)
	if err != nil {
		return Course{}, err
	}
	if !ok {
		return Course{}, errs.Unauthorized("not enrolled in this course")
	}
	return s.store.GetCourse(ctx, courseID)
}

func (s *Service) EnrolledStudents(ctx context.Context, actor auth.Actor, courseID string) ([]user.Summary, error) {
	if _, err := s.requireOwner(ctx, actor, courseID); err != nil {
		return nil, err
	}
	return s.store.ListEnrolledStudents(ctx, courseID)
}

func (s *Service) Assignments(ctx context.Context, courseID string) ([]Assignment, error) {
	return s.store.ListAssignments(ctx, courseID)
}

// SubmitAssignment records a student's uploaded file. fileKey is the
// opaque blob key produced by the storage layer.
func (s *Service) SubmitAssignment(ctx context.Context, actor auth.Actor, assignmentID, fileKey string) (Submission, error) {
	if !actor.IsStudent() {
		return Submission{}, errs.Unauthorized("only students can submit assignments")
	}
	if fileKey == "" {
		return Submission{}, errs.InvalidInput("file is required")
	}
	if _, err := s.store.GetAssignment(ctx, assignmentID); err != nil {
		return Submission{}, err
	}
	sub := Submission{
		ID:           "s-" + uuid.NewString(),
		AssignmentID: assignmentID,
		StudentID:    actor.ID,
		FileKey:      fileKey,
		SubmittedAt:  time.Now().Unix(),
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *Service) Submissions(ctx context.Context, actor auth.Actor, assignmentID string) ([]Submission, error) {
	a, err := s.store.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireOwner(ctx, actor, a.CourseID); err != nil {
		return nil, err
	}
	return s.store.ListSubmissions(ctx, assignmentID)
}

// Grade sets marks and feedback on a submission. Only the teacher who
// owns the course the assignment belongs to may grade.
func (s *Service) Grade(ctx context.Context, actor auth.Actor, submissionID string, marks int, feedback string) (Submission, error) {
	if marks < 0 {
		return Submission{}, errs.InvalidInput("marks must be non-negative")
	}
	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	a, err := s.store.GetAssignment(ctx, sub.AssignmentID)
	if err != nil {
		return Submission{}, err
	}
	if _, err := s.requireOwner(ctx, actor, a.CourseID); err != nil {
		return Submission{}, err
	}
	return s.store.GradeSubmission(ctx, submissionID, marks, feedback)
}
