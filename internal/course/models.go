package course

import "github.com/openlearn/classroom/internal/user"

// ContentItem is one entry in a course's ordered video or pdf list. URL
// is an opaque handle; the backend never interprets it.
type ContentItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Course struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	TeacherID   string        `json:"teacher_id"`
	Videos      []ContentItem `json:"videos"`
	PDFs        []ContentItem `json:"pdfs"`
	CreatedAt   int64         `json:"created_at"`
}

type Assignment struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     int64  `json:"due_date"`
}

// Submission is a student's file handed in for an assignment. Marks is
// nil until a teacher grades it. Student is populated on teacher-facing
// listings only.
type Submission struct {
	ID           string        `json:"id"`
	AssignmentID string        `json:"assignment_id"`
	StudentID    string        `json:"student_id"`
	FileKey      string        `json:"file_key"`
	SubmittedAt  int64         `json:"submitted_at"`
	Marks        *int          `json:"marks"`
	Feedback     string        `json:"feedback"`
	Student      *user.Summary `json:"student,omitempty"`
}
