package auth

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Actor is the authenticated caller, passed explicitly into every core
// operation so scoring and analytics stay testable without a transport.
type Actor struct {
	ID    string
	Email string
	Role  string
}

func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
func (a Actor) IsTeacher() bool { return a.Role == RoleTeacher }
