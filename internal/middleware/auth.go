package middleware

import (
	"net/http"
	"time"

	"github.com/calder-marchand/daybook/internal/auth"
	"github.com/calder-marchand/daybook/internal/session"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session"

// SetSessionCookie writes the token as an http-only session cookie whose
// expiry matches the token's.
func SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

// ClearSessionCookie destroys the session by overwriting the cookie with an
// empty, already-expired value.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

// RequireAuth verifies the session cookie, installs the member identity in
// the request context, and re-issues the cookie so the session window
// slides forward on every authenticated request. Any verification failure
// degrades to anonymous and redirects to sign-in.
// HTMX-aware: returns an HX-Redirect header instead of a 303 for HTMX
// requests.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				redirectToSignIn(w, r)
				return
			}

			claims, err := sessions.Verify(cookie.Value)
			if err != nil {
				redirectToSignIn(w, r)
				return
			}

			if refreshed, expiresAt, err := sessions.Refresh(cookie.Value); err == nil {
				SetSessionCookie(w, r, refreshed, expiresAt)
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{
				MemberID: claims.MemberID,
				Email:    claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/sign-in")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}
