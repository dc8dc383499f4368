package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/openlearn/classroom/internal/errs"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id,name,email,password_hash,role) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.InvalidInput("email already registered")
		}
		return errs.Internal("create user", err)
	}
	return nil
}

func (s *SQLStore) GetByID(ctx context.Context, id string) (User, error) {
	return s.getWhere(ctx, `id=$1`, id)
}

func (s *SQLStore) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.getWhere(ctx, `email=$1`, email)
}

func (s *SQLStore) getWhere(ctx context.Context, cond string, arg any) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,email,password_hash,role FROM users WHERE `+cond, arg)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, errs.NotFound("user not found")
		}
		return User{}, errs.Internal("get user", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
