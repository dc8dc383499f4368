package http

import (
	nethttp "net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openlearn/classroom/internal/analytics"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/quiz"
	"github.com/openlearn/classroom/internal/storage"
	"github.com/openlearn/classroom/internal/user"
)

// CourseCatalogHandler lists every course for the browse view.
func CourseCatalogHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		out, err := courses.Catalog(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"courses": out})
	}
}

func EnrollHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		if err := courses.Enroll(r.Context(), actor, chi.URLParam(r, "courseID")); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]string{"message": "enrolled successfully"})
	}
}

func EnrolledCoursesHandler(courses *course.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		out, err := courses.EnrolledCourses(r.Context(), actor)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"courses": out})
	}
}

// StudentCourseDetailHandler returns course content with quizzes
// annotated by the student's best attempt. Requires enrollment.
func StudentCourseDetailHandler(courses *course.Service, users user.Store, engine *analytics.Engine) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		courseID := chi.URLParam(r, "courseID")
		c, err := courses.GetForStudent(r.Context(), actor, courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		teacher, err := users.GetByID(r.Context(), c.TeacherID)
		if err != nil {
			writeErr(w, err)
			return
		}
		quizzes, err := engine.QuizzesWithBestAttempt(r.Context(), courseID, actor.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		assignments, err := courses.Assignments(r.Context(), courseID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"course":      c,
			"teacher":     user.Summary{ID: teacher.ID, Name: teacher.Name, Email: teacher.Email},
			"quizzes":     quizzes,
			"assignments": assignments,
		})
	}
}

// GetQuizHandler serves the questions with answer keys stripped.
func GetQuizHandler(quizzes *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		title, questions, err := quizzes.GetForStudent(r.Context(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"title": title, "quiz": questions})
	}
}

// SubmitQuizHandler grades the submitted answers and records the
// attempt. Partial answer maps are accepted; unanswered questions score
// zero.
func SubmitQuizHandler(quizzes *quiz.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		var req struct {
			Answers map[string]int `json:"answers" validate:"required"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		res, err := quizzes.Submit(r.Context(), actor, chi.URLParam(r, "quizID"), parseAnswers(req.Answers))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, res)
	}
}

// SubmitAssignmentHandler stores the uploaded file and records the
// submission with the blob key as its opaque file handle.
func SubmitAssignmentHandler(courses *course.Service, blobs storage.BlobStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		assignmentID := chi.URLParam(r, "assignmentID")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeErr(w, errs.InvalidInput("file is required"))
			return
		}
		defer f.Close()

		key := "assignments/" + assignmentID + "/" + uuid.NewString() + "-" + path.Base(hdr.Filename)
		if _, err := blobs.Put(key, f); err != nil {
			writeErr(w, errs.Internal("store file", err))
			return
		}
		sub, err := courses.SubmitAssignment(r.Context(), actor, assignmentID, key)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"submission": sub})
	}
}

func StudentDashboardHandler(engine *analytics.Engine) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		dash, err := engine.ForStudent(r.Context(), actor.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{"analytics": dash})
	}
}
