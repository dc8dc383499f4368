package http

import (
	nethttp "net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/openlearn/classroom/internal/auth"
	authmw "github.com/openlearn/classroom/internal/auth/middleware"
	"github.com/openlearn/classroom/internal/errs"
	"github.com/openlearn/classroom/internal/user"
)

const bcryptCost = 12

// RegisterHandler creates a student or teacher account.
func RegisterHandler(users user.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Name     string `json:"name" validate:"required"`
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=6"`
			Role     string `json:"role" validate:"required,oneof=student teacher"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			writeErr(w, errs.Internal("hash password", err))
			return
		}
		u := user.User{
			ID:           "u-" + uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         req.Role,
		}
		if err := users.Create(r.Context(), u); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, map[string]string{"message": "user registered successfully"})
	}
}

// LoginHandler checks credentials and issues a bearer token. Wrong
// email and wrong password both answer 400, matching the registration
// flow's client.
func LoginHandler(users user.Store, authSvc *authmw.AuthService) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
		}
		if err := decodeValid(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		u, err := users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			if errs.IsNotFound(err) {
				writeErr(w, errs.InvalidInput("invalid email"))
				return
			}
			writeErr(w, err)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			writeErr(w, errs.InvalidInput("invalid password"))
			return
		}
		actor := auth.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
		tok, err := authSvc.IssueJWT(actor)
		if err != nil {
			writeErr(w, errs.Internal("issue token", err))
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"access_token": tok,
			"user": map[string]string{
				"id":    u.ID,
				"name":  u.Name,
				"email": u.Email,
				"role":  u.Role,
			},
		})
	}
}

// ProfileHandler returns the authenticated user's public profile.
func ProfileHandler(users user.Store) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}
		u, err := users.GetByID(r.Context(), actor.ID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]string{
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		})
	}
}
