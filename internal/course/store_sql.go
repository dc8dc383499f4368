package course

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/user"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) CreateCourse(ctx context.Context, c Course) error {
	vj, err := json.Marshal(emptyIfNil(c.Videos))
	if err != nil {
		return errs.Internal("encode videos", err)
	}
	pj, err := json.Marshal(emptyIfNil(c.PDFs))
	if err != nil {
		return errs.Internal("encode pdfs", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO courses (id,title,description,teacher_id,videos_json,pdfs_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.Title, c.Description, c.TeacherID, string(vj), string(pj), c.CreatedAt)
	if err != nil {
		return errs.Internal("create course", err)
	}
	return nil
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,description,teacher_id,videos_json,pdfs_json,created_at FROM courses WHERE id=$1`, id)
	return scanCourse(row)
}

func (s *SQLStore) ListCourses(ctx context.Context) ([]Course, error) {
	return s.listWhere(ctx, ``, nil)
}

func (s *SQLStore) ListByTeacher(ctx context.Context, teacherID string) ([]Course, error) {
	return s.listWhere(ctx, ` WHERE teacher_id=$1`, []any{teacherID})
}

func (s *SQLStore) listWhere(ctx context.Context, cond string, args []any) ([]Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,title,description,teacher_id,videos_json,pdfs_json,created_at FROM courses`+
			cond+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, errs.Internal("list courses", err)
	}
	defer rows.Close()
	out := []Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal("list courses", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (Course, error) {
	var c Course
	var vj, pj string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.TeacherID, &vj, &pj, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, errs.NotFound("course not found")
		}
		return Course{}, errs.Internal("scan course", err)
	}
	if err := json.Unmarshal([]byte(vj), &c.Videos); err != nil {
		return Course{}, errs.Internal("decode videos", err)
	}
	if err := json.Unmarshal([]byte(pj), &c.PDFs); err != nil {
		return Course{}, errs.Internal("decode pdfs", err)
	}
	return c, nil
}

func (s *SQLStore) AddVideo(ctx context.Context, courseID string, item ContentItem) ([]ContentItem, error) {
	return s.appendContent(ctx, courseID, item, "videos_json")
}

func (s *SQLStore) AddPDF(ctx context.Context, courseID string, item ContentItem) ([]ContentItem, error) {
	return s.appendContent(ctx, courseID, item, "pdfs_json")
}

// appendContent reads, appends and rewrites one JSON list column. The
// read and write are not transactional; course content is only ever
// mutated by its single owning teacher.
func (s *SQLStore) appendContent(ctx context.Context, courseID string, item ContentItem, col string) ([]ContentItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+col+` FROM courses WHERE id=$1`, courseID)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("course not found")
		}
		return nil, errs.Internal("load course content", err)
	}
	var items []ContentItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, errs.Internal("decode course content", err)
	}
	items = append(items, item)
	buf, err := json.Marshal(items)
	if err != nil {
		return nil, errs.Internal("encode course content", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE courses SET `+col+`=$1 WHERE id=$2`, string(buf), courseID); err != nil {
		return nil, errs.Internal("update course content", err)
	}
	return items, nil
}

func (s *SQLStore) Enroll(ctx context.Context, courseID, studentID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrollments (course_id,student_id,enrolled_at) VALUES ($1,$2,$3)
		 ON CONFLICT (course_id,student_id) DO NOTHING`,
		courseID, studentID, time.Now().Unix())
	if err != nil {
		return errs.Internal("enroll", err)
	}
	return nil
}

func (s *SQLStore) IsEnrolled(ctx context.Context, courseID, studentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM enrollments WHERE course_id=$1 AND student_id=$2`, courseID, studentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errs.Internal("check enrollment", err)
	}
	return true, nil
}

func (s *SQLStore) ListEnrolled(ctx context.Context, studentID string) ([]Course, error) {
	return s.listWhere(ctx,
		` JOIN enrollments e ON e.course_id=courses.id WHERE e.student_id=$1`, []any{studentID})
}

func (s *SQLStore) ListEnrolledStudents(ctx context.Context, courseID string) ([]user.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id,u.name,u.email FROM users u
		 JOIN enrollments e ON e.student_id=u.id
		 WHERE e.course_id=$1 ORDER BY u.name`, courseID)
	if err != nil {
		return nil, errs.Internal("list enrolled students", err)
	}
	defer rows.Close()
	out := []user.Summary{}
	for rows.Next() {
		var u user.Summary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, errs.Internal("scan student", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal("list enrolled students", err)
	}
	return out, nil
}

func (s *SQLStore) CountEnrolled(ctx context.Context, courseID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM enrollments WHERE course_id=$1`, courseID)
}

func (s *SQLStore) CreateAssignment(ctx context.Context, a Assignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (id,course_id,title,description,due_date) VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.CourseID, a.Title, a.Description, a.DueDate)
	if err != nil {
		return errs.Internal("create assignment", err)
	}
	return nil
}

func (s *SQLStore) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,course_id,title,description,due_date FROM assignments WHERE id=$1`, id)
	var a Assignment
	if err := row.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assignment{}, errs.NotFound("assignment not found")
		}
		return Assignment{}, errs.Internal("get assignment", err)
	}
	return a, nil
}

func (s *SQLStore) ListAssignments(ctx context.Context, courseID string) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,course_id,title,description,due_date FROM assignments WHERE course_id=$1 ORDER BY due_date`, courseID)
	if err != nil {
		return nil, errs.Internal("list assignments", err)
	}
	defer rows.Close()
	out := []Assignment{}
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate); err != nil {
			return nil, errs.Internal("scan assignment", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal("list assignments", err)
	}
	return out, nil
}

func (s *SQLStore) CountAssignments(ctx context.Context, courseID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM assignments WHERE course_id=$1`, courseID)
}

func (s *SQLStore) CreateSubmission(ctx context.Context, sub Submission) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignment_submissions (id,assignment_id,student_id,file_key,submitted_at,marks,feedback)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		sub.ID, sub.AssignmentID, sub.StudentID, sub.FileKey, sub.SubmittedAt, sub.Marks, sub.Feedback)
	if err != nil {
		return errs.Internal("create submission", err)
	}
	return nil
}

func (s *SQLStore) GetSubmission(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,assignment_id,student_id,file_key,submitted_at,marks,feedback
		 FROM assignment_submissions WHERE id=$1`, id)
	var sub Submission
	if err := row.Scan(&sub.ID, &sub.AssignmentID, &sub.StudentID, &sub.FileKey,
		&sub.SubmittedAt, &sub.Marks, &sub.Feedback); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, errs.NotFound("submission not found")
		}
		return Submission{}, errs.Internal("get submission", err)
	}
	return sub, nil
}

func (s *SQLStore) ListSubmissions(ctx context.Context, assignmentID string) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id,s.assignment_id,s.student_id,s.file_key,s.submitted_at,s.marks,s.feedback,
		        u.id,u.name,u.email
		 FROM assignment_submissions s
		 JOIN users u ON u.id=s.student_id
		 WHERE s.assignment_id=$1 ORDER BY s.submitted_at`, assignmentID)
	if err != nil {
		return nil, errs.Internal("list submissions", err)
	}
	defer rows.Close()
	out := []Submission{}
	for rows.Next() {
		var sub Submission
		var u user.Summary
		if err := rows.Scan(&sub.ID, &sub.AssignmentID, &sub.StudentID, &sub.FileKey,
			&sub.SubmittedAt, &sub.Marks, &sub.Feedback, &u.ID, &u.Name, &u.Email); err != nil {
			return nil, errs.Internal("scan submission", err)
		}
		sub.Student = &u
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Internal("list submissions", err)
	}
	return out, nil
}

func (s *SQLStore) CountSubmissionsByStudent(ctx context.Context, studentID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM assignment_submissions WHERE student_id=$1`, studentID)
}

func (s *SQLStore) CountSubmissionsForCourse(ctx context.Context, courseID string) (int, error) {
	return s.count(ctx,
		`SELECT COUNT(*) FROM assignment_submissions s
		 JOIN assignments a ON a.id=s.assignment_id
		 WHERE a.course_id=$1`, courseID)
}

func (s *SQLStore) GradeSubmission(ctx context.Context, id string, marks int, feedback string) (Submission, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE assignment_submissions SET marks=$1, feedback=$2 WHERE id=$3`, marks, feedback, id)
	if err != nil {
		return Submission{}, errs.Internal("grade submission", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Submission{}, errs.NotFound("submission not found")
	}
	return s.GetSubmission(ctx, id)
}

func (s *SQLStore) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, errs.Internal("count", err)
	}
	return n, nil
}

func emptyIfNil(items []ContentItem) []ContentItem {
	if items == nil {
		return []ContentItem{}
	}
	return items
}
