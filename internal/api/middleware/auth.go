package middleware

import (
	"log/slog"
	"net/http"

	"github.com/LeoR1u/ProyectoLegos/internal/session"
)

const LoginPath = "/login"

// RequireLogin sends visitors without a signed-in session to the login page.
// It must run inside SessionMiddleware.Attach.
func RequireLogin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.IsAuthenticated() {
			logger.Info("Login required, redirecting")
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		requestScopedLogger := logger.With(slog.String("userId", sess.User.ID.String()))

		next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), requestScopedLogger)))
	}
}
