package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/LeoR1u/ProyectoLegos/internal/api/middleware"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/session"
	"github.com/google/uuid"
)

// SignedInSession returns a stored-looking session for a user named username.
func SignedInSession(username string) *session.Session {
	sess := session.New()
	sess.User = &models.User{ID: uuid.New(), Username: username}

	return sess
}

// CreateTestRequestWithContext builds a request carrying sess and a discarding
// logger, as SessionMiddleware would.
func CreateTestRequestWithContext(method, target string, body io.Reader, sess *session.Session, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	return req.WithContext(session.WithSession(req.Context(), sess))
}

// CreateTestRequestWithoutContext builds a request with only the logger set.
func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
