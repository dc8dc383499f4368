package user

// User is an account record. PasswordHash never leaves the store layer
// except for credential checks at login.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"` // student|teacher
}

// Summary is the public projection embedded in rosters and analytics.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
