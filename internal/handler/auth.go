package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/calder-marchand/daybook/internal/middleware"
	"github.com/calder-marchand/daybook/internal/session"
	"github.com/calder-marchand/daybook/internal/store"
)

const invalidCredentials = "Invalid credentials"

type AuthHandler struct {
	members  *store.MemberStore
	sessions *session.Manager
	logger   *slog.Logger
}

func NewAuthHandler(ms *store.MemberStore, sm *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{members: ms, sessions: sm, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	if firstName == "" || lastName == "" || email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Name and email are required"})
		return
	}
	if len(password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Password must be at least 8 characters"})
		return
	}

	existing, err := h.members.GetByEmail(email)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "An account with that email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	member, err := h.members.Create(firstName, lastName, email, string(hash))
	if err != nil {
		h.logger.Error("create member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	token, expiresAt, err := h.sessions.Issue(member.ID, member.Email)
	if err != nil {
		h.logger.Error("issue session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}
	middleware.SetSessionCookie(w, r, token, expiresAt)

	writeJSON(w, http.StatusCreated, member)
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	member, err := h.members.GetByEmail(email)
	if err != nil {
		h.logger.Error("sign-in lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sign-in failed"})
		return
	}
	// Same response for unknown email and wrong password
	if member == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": invalidCredentials})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": invalidCredentials})
		return
	}

	token, expiresAt, err := h.sessions.Issue(member.ID, member.Email)
	if err != nil {
		h.logger.Error("issue session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "sign-in failed"})
		return
	}
	middleware.SetSessionCookie(w, r, token, expiresAt)

	writeJSON(w, http.StatusOK, member)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// RequestPasswordReset issues a single-use reset token. The response is the
// same whether or not the email is registered.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))

	member, err := h.members.GetByEmail(email)
	if err != nil {
		h.logger.Error("reset lookup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reset failed"})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "If that account exists, a reset token has been issued"})
		return
	}

	reset, err := h.members.CreatePasswordReset(member.ID)
	if err != nil {
		h.logger.Error("create reset", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reset failed"})
		return
	}

	// Single-household deployment: hand the token straight back so the
	// presentation layer can route to the reset form.
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If that account exists, a reset token has been issued",
		"token":   reset.Token,
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.FormValue("token"))
	password := r.FormValue("password")

	if len(password) < 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Password must be at least 8 characters"})
		return
	}

	reset, err := h.members.GetPasswordReset(token)
	if err != nil {
		h.logger.Error("get reset", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reset failed"})
		return
	}
	if reset == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid or expired token"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reset failed"})
		return
	}
	if err := h.members.UpdatePassword(reset.MemberID, string(hash)); err != nil {
		h.logger.Error("update password", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reset failed"})
		return
	}
	if err := h.members.MarkResetUsed(reset.ID); err != nil {
		h.logger.Error("mark reset used", "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
