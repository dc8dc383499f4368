package course

import (
	"context"
	"sort"
	"sync"

	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/user"
)

// memoryStore backs tests and offline demos. Students must be
// registered with AddStudent before they appear in rosters.
type memoryStore struct {
	mu          sync.RWMutex
	courses     map[string]Course
	enrollments map[string]map[string]bool // courseID -> studentID set
	assignments map[string]Assignment
	submissions map[string]Submission
	students    map[string]user.Summary
}

type MemoryStore struct{ *memoryStore }

func NewInMemoryStore() *MemoryStore {
	return &MemoryStore{&memoryStore{
		courses:     map[string]Course{},
		enrollments: map[string]map[string]bool{},
		assignments: map[string]Assignment{},
		submissions: map[string]Submission{},
		students:    map[string]user.Summary{},
	}}
}

// AddStudent registers identity data for roster listings.
func (m *MemoryStore) AddStudent(s user.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[s.ID] = s
}

func (m *memoryStore) CreateCourse(_ context.Context, c Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses[c.ID] = c
	return nil
}

func (m *memoryStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, errs.NotFound("course not found")
	}
	return c, nil
}

func (m *memoryStore) ListCourses(_ context.Context) ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Course{}
	for _, c := range m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memoryStore) ListByTeacher(_ context.Context, teacherID string) ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Course{}
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memoryStore) AddVideo(_ context.Context, courseID string, item ContentItem) ([]ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseID]
	if !ok {
		return nil, errs.NotFound("course not found")
	}
	c.Videos = append(c.Videos, item)
	m.courses[courseID] = c
	return c.Videos, nil
}

func (m *memoryStore) AddPDF(_ context.Context, courseID string, item ContentItem) ([]ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[courseID]
	if !ok {
		return nil, errs.NotFound("course not found")
	}
	c.PDFs = append(c.PDFs, item)
	m.courses[courseID] = c
	return c.PDFs, nil
}

func (m *memoryStore) Enroll(_ context.Context, courseID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enrollments[courseID] == nil {
		m.enrollments[courseID] = map[string]bool{}
	}
	m.enrollments[courseID][studentID] = true
	return nil
}

func (m *memoryStore) IsEnrolled(_ context.Context, courseID, studentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enrollments[courseID][studentID], nil
}

func (m *memoryStore) ListEnrolled(ctx context.Context, studentID string) ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Course{}
	for courseID, set := range m.enrollments {
		if set[studentID] {
			out = append(out, m.courses[courseID])
		}
	}
	return out, nil
}

func (m *memoryStore) ListEnrolledStudents(_ context.Context, courseID string) ([]user.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []user.Summary{}
	for studentID := range m.enrollments[courseID] {
		if s, ok := m.students[studentID]; ok {
			out = append(out, s)
		} else {
			out = append(out, user.Summary{ID: studentID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) CountEnrolled(_ context.Context, courseID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.enrollments[courseID]), nil
}

func (m *memoryStore) CreateAssignment(_ context.Context, a Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.ID] = a
	return nil
}

func (m *memoryStore) GetAssignment(_ context.Context, id string) (Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assignments[id]
	if !ok {
		return Assignment{}, errs.NotFound("assignment not found")
	}
	return a, nil
}

func (m *memoryStore) ListAssignments(_ context.Context, courseID string) ([]Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Assignment{}
	for _, a := range m.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

func (m *memoryStore) CountAssignments(ctx context.Context, courseID string) (int, error) {
	as, err := m.ListAssignments(ctx, courseID)
	return len(as), err
}

func (m *memoryStore) CreateSubmission(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[s.ID] = s
	return nil
}

func (m *memoryStore) GetSubmission(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.submissions[id]
	if !ok {
		return Submission{}, errs.NotFound("submission not found")
	}
	return s, nil
}

func (m *memoryStore) ListSubmissions(_ context.Context, assignmentID string) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Submission{}
	for _, s := range m.submissions {
		if s.AssignmentID == assignmentID {
			if st, ok := m.students[s.StudentID]; ok {
				stc := st
				s.Student = &stc
			}
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt < out[j].SubmittedAt })
	return out, nil
}

func (m *memoryStore) CountSubmissionsByStudent(_ context.Context, studentID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) CountSubmissionsForCourse(_ context.Context, courseID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.submissions {
		if a, ok := m.assignments[s.AssignmentID]; ok && a.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) GradeSubmission(_ context.Context, id string, marks int, feedback string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.submissions[id]
	if !ok {
		return Submission{}, errs.NotFound("submission not found")
	}
	s.Marks = &marks
	s.Feedback = feedback
	m.submissions[id] = s
	return s, nil
}

var _ Store = (*MemoryStore)(nil)
