// Package middleware contains the per-request pipeline stages: current-user
// resolution, the login gate, request logging and panic recovery.
package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"gorm.io/gorm"

	"gonotes/models"
)

// SessionName is the cookie under which all session state lives.
const SessionName = "session"

type contextKey struct{}

var userKey contextKey

// CurrentUser resolves the session's user id to a User and stores it in the
// request context for the rest of the pipeline. A missing or stale id leaves
// the request anonymous; it is never an error.
func CurrentUser(db *gorm.DB, store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := store.Get(r, SessionName)
			if id, ok := session.Values["user_id"].(uint); ok {
				var user models.User
				if err := db.First(&user, id).Error; err == nil {
					r = r.WithContext(WithUser(r.Context(), &user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser returns a context carrying user as the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// RequireLogin redirects anonymous requests to the log-in page before the
// wrapped handler runs.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/log_in", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
