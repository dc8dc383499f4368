package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openlearn/classroom/internal/analytics"
	"github.com/openlearn/classroom/internal/auth"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/quiz"
	"github.com/openlearn/classroom/internal/user"
)

func CreateCourseHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		var req struct {
			Title       string `json:"title" validate:"required"`
			Description string `json:"description" validate:"required"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		c, err := courses.Create(r.Context(), actor, req.Title, req.Description)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, c)
	}
}

func MyCoursesHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		out, err := courses.OwnedBy(r.Context(), actor.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"courses": out})
	}
}

func AddVideoHandler(courses *course.Service) nethttp.HandlerFunc {
	return addContentHandler(courses.AddVideo, "videos")
}

func AddPDFHandler(courses *course.Service) nethttp.HandlerFunc {
	return addContentHandler(courses.AddPDF, "pdfs")
}

func addContentHandler(
	add func(ctx context.Context, actor auth.Actor, courseID string, item course.ContentItem) ([]course.ContentItem, error),
	field string,
) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		var req struct {
			Title string `json:"title" validate:"required"`
			URL   string `json:"url" validate:"required"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		items, err := add(r.Context(), actor, chi.URLParam(r, "courseID"),
			course.ContentItem{Title: req.Title, URL: req.URL})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{field: items})
	}
}

func AddQuizHandler(quizzes *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		var req struct {
			Title     string          `json:"title" validate:"required"`
			Questions []quiz.Question `json:"questions" validate:"required,min=1"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		q, err := quizzes.Create(r.Context(), actor, chi.URLParam(r, "courseID"), req.Title, req.Questions)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, q)
	}
}

func AddAssignmentHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		var req struct {
			Title       string `json:"title" validate:"required"`
			Description string `json:"description" validate:"required"`
			DueDate     string `json:"dueDate" validate:"required"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		due, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			// date-only form from the course form
			due, err = time.Parse("2006-01-02", req.DueDate)
		}
		if err != nil {
			writeErr(w, errs.InvalidInput("dueDate must be RFC3339 or YYYY-MM-DD"))
			return
		}
		a, err := courses.AddAssignment(r.Context(), actor, chi.URLParam(r, "courseID"),
			req.Title, req.Description, due.Unix())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, a)
	}
}

func AssignmentSubmissionsHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		subs, err := courses.Submissions(r.Context(), actor, chi.URLParam(r, "assignmentID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"submissions": subs})
	}
}

func GradeSubmissionHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		var req struct {
			Marks    *int   `json:"marks" validate:"required"`
			Feedback string `json:"feedback"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		sub, err := courses.Grade(r.Context(), actor, chi.URLParam(r, "submissionID"), *req.Marks, req.Feedback)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"submission": sub})
	}
}

func EnrolledStudentsHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		students, err := courses.EnrolledStudents(r.Context(), actor, chi.URLParam(r, "courseID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"students": students})
	}
}

func TeacherDashboardHandler(engine *analytics.Engine) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		dash, err := engine.ForTeacher(r.Context(), actor.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, dash)
	}
}

// TeacherCourseDetailHandler returns the owned course plus its quiz and
// assignment lists for the management view.
func TeacherCourseDetailHandler(courses *course.Service, quizzes *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		courseID := chi.URLParam(r, "courseID")
		c, err := courses.RequireOwner(r.Context(), actor, courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		qs, err := quizzes.ListForCourse(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		quizRefs := make([]map[string]any, 0, len(qs))
		for _, q := range qs {
			quizRefs = append(quizRefs, map[string]any{
				"id":             q.ID,
				"title":          q.Title,
				"totalQuestions": len(q.Questions),
			})
		}
		assignments, err := courses.Assignments(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"course":      c,
			"quizzes":     quizRefs,
			"assignments": assignments,
		})
	}
}

func QuizAnalyticsHandler(courses *course.Service, engine *analytics.Engine) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		courseID := chi.URLParam(r, "courseID")
		if _, err := courses.RequireOwner(r.Context(), actor, courseID); err != nil {
			writeErr(w, err)
			return
		}
		summaries, err := engine.CourseQuizSummaries(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"analytics": summaries})
	}
}

// QuizStudentsHandler reports per-student aggregates for one quiz.
func QuizStudentsHandler(quizzes *quiz.Service, engine *analytics.Engine) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		quizID := chi.URLParam(r, "quizID")
		if _, err := quizzes.Analysis(r.Context(), actor, quizID); err != nil {
			writeErr(w, err)
			return
		}
		total, rows, err := engine.QuizStudentRows(r.Context(), quizID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"totalQuestions": total,
			"students":       rows,
		})
	}
}

// QuizAnalysisHandler returns the quiz with answer keys for review.
func QuizAnalysisHandler(quizzes *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		q, err := quizzes.Analysis(r.Context(), actor, chi.URLParam(r, "quizID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"quiz": map[string]any{"title": q.Title, "questions": q.Questions},
		})
	}
}

// StudentProgressHandler reports one student's quiz progress across a
// course the actor owns.
func StudentProgressHandler(courses *course.Service, users user.Store, engine *analytics.Engine) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		courseID := chi.URLParam(r, "courseID")
		studentID := chi.URLParam(r, "studentID")
		if _, err := courses.RequireOwner(r.Context(), actor, courseID); err != nil {
			writeErr(w, err)
			return
		}
		u, err := users.GetByID(r.Context(), studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		progress, err := engine.CourseProgress(r.Context(), courseID, studentID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"student": user.Summary{ID: u.ID, Name: u.Name, Email: u.Email},
			"quizzes": progress,
		})
	}
}
