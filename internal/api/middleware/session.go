package middleware

import (
	"log/slog"
	"net/http"

	appErrors "github.com/LeoR1u/ProyectoLegos/internal/errors"
	"github.com/LeoR1u/ProyectoLegos/internal/session"
	"github.com/LeoR1u/ProyectoLegos/internal/utils/response"
)

// sessionWriter saves the session just before the first byte of the response
// goes out. When the save fails the handler's own response is dropped and a
// store error is sent in its place.
type sessionWriter struct {
	http.ResponseWriter
	commit    func() bool
	committed bool
	failed    bool
}

func (sw *sessionWriter) commitOnce() {
	if !sw.committed {
		sw.committed = true
		sw.failed = !sw.commit()
	}
}

func (sw *sessionWriter) WriteHeader(code int) {
	sw.commitOnce()
	if sw.failed {
		return
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	sw.commitOnce()
	if sw.failed {
		return len(b), nil
	}
	return sw.ResponseWriter.Write(b)
}

func (sw *sessionWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

type SessionMiddleware struct {
	manager *session.Manager
	locker  *session.Locker
}

func NewSessionMiddleware(manager *session.Manager, locker *session.Locker) *SessionMiddleware {
	return &SessionMiddleware{manager: manager, locker: locker}
}

// Attach loads the visitor's session and holds its lock for the whole request.
// The session is saved when the handler starts writing, so handlers must be
// done with it by then.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		id, _ := m.manager.SessionID(r)
		if id != "" {
			unlock := m.locker.Lock(id)
			defer unlock()
		}

		sess, err := m.manager.Load(r.Context(), id)
		if err != nil {
			logger.Error("Failed to load session", slog.Any("error", err))
			response.Error(w, appErrors.DatabaseError("Session store unavailable").WithError(err))
			return
		}

		// headers set by the handler are dropped when the save fails
		baseHeader := w.Header().Clone()

		sw := &sessionWriter{ResponseWriter: w}
		sw.commit = func() bool {
			if err := m.manager.Commit(r.Context(), sess); err != nil {
				logger.Error("Failed to save session", slog.String("state", string(sess.State())), slog.Any("error", err))
				resetHeader(w.Header(), baseHeader)
				response.Error(w, appErrors.DatabaseError("Session store unavailable").WithError(err))
				return false
			}

			if err := m.manager.PrepareResponse(w, sess); err != nil {
				logger.Error("Failed to set session cookie", slog.Any("error", err))
				resetHeader(w.Header(), baseHeader)
				response.Error(w, appErrors.InternalError("Failed to issue session cookie").WithError(err))
				return false
			}

			if sess.Destroyed() {
				logger.Info("Session ended")
			}

			return true
		}

		next.ServeHTTP(sw, r.WithContext(session.WithSession(r.Context(), sess)))

		// Handlers that wrote nothing are saved here.
		sw.commitOnce()
	})
}

func resetHeader(h, base http.Header) {
	for key := range h {
		delete(h, key)
	}

	for key, values := range base {
		h[key] = values
	}
}
