package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/openlearn/classroom/internal/analytics"
	api "github.com/openlearn/classroom/internal/api/http"
	authmw "github.com/openlearn/classroom/internal/auth/middleware"
	"github.com/openlearn/classroom/internal/config"
	"github.com/openlearn/classroom/internal/course"
	"github.com/openlearn/classroom/internal/db"
	"github.com/openlearn/classroom/internal/quiz"
	"github.com/openlearn/classroom/internal/rbac"
	"github.com/openlearn/classroom/internal/storage"
	"github.com/openlearn/classroom/internal/user"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	// --- Stores and services ---
	users := user.NewSQLStore(dbh)
	courseStore := course.NewSQLStore(dbh)
	quizStore := quiz.NewSQLStore(dbh)

	courseSvc := course.NewService(courseStore)
	quizSvc := quiz.NewService(quizStore, courseSvc)
	engine := analytics.NewEngine(quizStore, courseStore, users)

	authSvc := authmw.NewAuthService(cfg.JWTSecret, cfg.TokenTTL)

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public auth endpoints
	r.Post("/user-api/register", api.RegisterHandler(users))
	r.Post("/user-api/login", api.LoginHandler(users, authSvc))

	// Protected API (JWT -> actor in context -> RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.Get("/user-api/profile", api.ProfileHandler(users))

		// Teacher surface
		pr.Route("/course-api", func(cr chi.Router) {
			cr.With(rbac.Require("course:create")).
				Post("/create-course", api.CreateCourseHandler(courseSvc))
			cr.With(rbac.Require("course:view-own")).
				Get("/teacher/my-courses", api.MyCoursesHandler(courseSvc))
			cr.With(rbac.Require("course:modify-own")).
				Post("/add-video/{courseID}", api.AddVideoHandler(courseSvc))
			cr.With(rbac.Require("course:modify-own")).
				Post("/add-pdf/{courseID}", api.AddPDFHandler(courseSvc))
			cr.With(rbac.Require("quiz:create")).
				Post("/add-quiz/{courseID}", api.AddQuizHandler(quizSvc))
			cr.With(rbac.Require("assignment:create")).
				Post("/add-assignment/{courseID}", api.AddAssignmentHandler(courseSvc))
			cr.With(rbac.Require("submission:view-own")).
				Get("/assignment/{assignmentID}/submissions", api.AssignmentSubmissionsHandler(courseSvc))
			cr.With(rbac.Require("submission:grade-own")).
				Put("/submission/{submissionID}/grade", api.GradeSubmissionHandler(courseSvc))
			cr.With(rbac.Require("course:view-own")).
				Get("/{courseID}/enrolled-students", api.EnrolledStudentsHandler(courseSvc))
			cr.With(rbac.Require("dashboard:teacher")).
				Get("/teacher/dashboard", api.TeacherDashboardHandler(engine))
			cr.With(rbac.Require("course:view-own")).
				Get("/teacher/course/{courseID}", api.TeacherCourseDetailHandler(courseSvc, quizSvc))
			cr.With(rbac.Require("quiz:analytics-own")).
				Get("/teacher/course/{courseID}/quiz-analytics", api.QuizAnalyticsHandler(courseSvc, engine))
			cr.With(rbac.Require("quiz:analytics-own")).
				Get("/teacher/quiz/{quizID}/students", api.QuizStudentsHandler(quizSvc, engine))
			cr.With(rbac.Require("quiz:analytics-own")).
				Get("/teacher/quiz-analysis/{quizID}", api.QuizAnalysisHandler(quizSvc))
			cr.With(rbac.Require("quiz:analytics-own")).
				Get("/teacher/course/{courseID}/student/{studentID}/progress",
					api.StudentProgressHandler(courseSvc, users, engine))
		})

		// Student surface
		pr.Route("/student-api", func(sr chi.Router) {
			sr.With(rbac.Require("course:list")).
				Get("/courses", api.CourseCatalogHandler(courseSvc))
			sr.With(rbac.Require("course:enroll")).
				Post("/enroll/{courseID}", api.EnrollHandler(courseSvc))
			sr.With(rbac.Require("course:view-enrolled")).
				Get("/my-courses", api.EnrolledCoursesHandler(courseSvc))
			sr.With(rbac.Require("course:view-enrolled")).
				Get("/course/{courseID}", api.StudentCourseDetailHandler(courseSvc, users, engine))
			sr.With(rbac.Require("quiz:view")).
				Get("/quiz/{quizID}", api.GetQuizHandler(quizSvc))
			sr.With(rbac.Require("quiz:attempt")).
				Post("/quiz/{quizID}/submit", api.SubmitQuizHandler(quizSvc))
			sr.With(rbac.Require("assignment:submit")).
				Post("/assignment/{assignmentID}/submit", api.SubmitAssignmentHandler(courseSvc, blobs))
			sr.With(rbac.Require("dashboard:student")).
				Get("/dashboard", api.StudentDashboardHandler(engine))
		})

		// Stored assignment files
		pr.Route("/uploads", func(ur chi.Router) {
			api.MountUploads(ur, blobs)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
