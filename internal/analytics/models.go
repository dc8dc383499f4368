package analytics

// QuizSummary aggregates all attempts of one quiz. AvgScore is the mean
// over every attempt, not best-per-student, rounded to two decimals.
type QuizSummary struct {
	QuizID         string  `json:"quizId"`
	Title          string  `json:"title"`
	TotalQuestions int     `json:"totalQuestions"`
	TotalAttempts  int     `json:"totalAttempts"`
	BestScore      int     `json:"bestScore"`
	AvgScore       float64 `json:"avgScore"`
}

// StudentQuizRow is one student's aggregate for a quiz, grouped in
// first-seen attempt order.
type StudentQuizRow struct {
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Attempts   int    `json:"attempts"`
	BestScore  int    `json:"bestScore"`
	Percentage int    `json:"percentage"`
}

// ProgressRow covers one quiz the student has attempted at least once;
// unattempted quizzes are omitted from progress entirely.
type ProgressRow struct {
	QuizID         string `json:"quizId"`
	Title          string `json:"title"`
	Attempts       int    `json:"attempts"`
	BestScore      int    `json:"bestScore"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
	LastAttempted  int64  `json:"lastAttempted"`
}

type StudentDashboard struct {
	TotalCourses         int `json:"totalCourses"`
	QuizzesAttempted     int `json:"quizzesAttempted"`
	AssignmentsSubmitted int `json:"assignmentsSubmitted"`
	BestScoreAverage     int `json:"bestScoreAverage"`
}

type CourseAnalytics struct {
	CourseID            string `json:"courseId"`
	CourseTitle         string `json:"courseTitle"`
	EnrolledStudents    int    `json:"enrolledStudents"`
	QuizCount           int    `json:"quizCount"`
	AssignmentCount     int    `json:"assignmentCount"`
	SubmissionsReceived int    `json:"submissionsReceived"`
}

type TeacherDashboard struct {
	TotalCourses int               `json:"totalCourses"`
	Analytics    []CourseAnalytics `json:"analytics"`
}

// QuizWithAttempt annotates a course quiz with the student's best
// attempt; Attempt is nil when the quiz was never attempted.
type QuizWithAttempt struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	TotalQuestions int           `json:"totalQuestions"`
	Attempt        *AttemptBrief `json:"attempt"`
}

type AttemptBrief struct {
	Score int `json:"score"`
}
