package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName  = "dashboard_session"
	sessionIDKey = "sid"
)

type sessionKey struct{}

// NewSessionStore returns the cookie store carrying dashboard session ids.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session gives every request a dashboard session id, issuing a cookie on first visit.
func Session(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				slog.Debug("Ignoring unreadable session cookie", "error", err)
			}

			id, _ := session.Values[sessionIDKey].(string)
			if id == "" {
				id = uuid.NewString()
				session.Values[sessionIDKey] = id
				if err := session.Save(r, w); err != nil {
					slog.Error("Failed to save session", "error", err)
					http.Error(w, "Session unavailable", http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
		})
	}
}

// SessionID returns the dashboard session id set by Session.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
