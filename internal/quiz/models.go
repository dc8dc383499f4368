package quiz

// Question is one multiple-choice question. CorrectOption indexes into
// Options and must be valid at creation time.
type Question struct {
	Prompt        string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
}

// QuestionView is the student-facing projection with the answer key
// stripped.
type QuestionView struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

func (q Question) View() QuestionView {
	return QuestionView{Prompt: q.Prompt, Options: q.Options}
}

type Quiz struct {
	ID        string     `json:"id"`
	CourseID  string     `json:"course_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Attempt is append-only: once recorded it is never updated. Best and
// last attempts are derived, not stored.
type Attempt struct {
	ID          string `json:"id"`
	QuizID      string `json:"quiz_id"`
	StudentID   string `json:"student_id"`
	Score       int    `json:"score"`
	SubmittedAt int64  `json:"submitted_at"`
}

// SubmitResult is what a student sees right after handing in a quiz.
type SubmitResult struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}
