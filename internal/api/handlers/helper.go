package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/session"
	"github.com/LeoR1u/ProyectoLegos/internal/utils/response"
)

const HomePath = "/"

// currentSession fetches the session attached by SessionMiddleware. A missing
// session is a wiring bug, reported as an internal error.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Error("No session attached to request", slog.String("path", r.URL.Path))
		response.Error(w, errors.InternalError("Session unavailable"))
		return nil, false
	}

	return sess, true
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
