// Package session owns the per-visitor state: the signed-in user, if any, and
// the cart. A Session is loaded and locked once per request by the session
// middleware, mutated by the handlers, then saved or deleted.
package session

import (
	"context"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/google/uuid"
)

type State string

const (
	StateAnonymousEmpty         State = "anonymous-empty"
	StateAnonymousWithItems     State = "anonymous-with-items"
	StateAuthenticatedEmpty     State = "authenticated-empty"
	StateAuthenticatedWithItems State = "authenticated-with-items"
)

type Session struct {
	ID        string       `json:"id"`
	User      *models.User `json:"user,omitempty"`
	Cart      *models.Cart `json:"cart"`
	CreatedAt time.Time    `json:"created_at"`

	isNew       bool
	destroyed   bool
	rotatedFrom string
}

func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Cart:      models.NewCart(),
		CreatedAt: time.Now().UTC(),
		isNew:     true,
	}
}

func (s *Session) State() State {
	switch {
	case s.User == nil && s.Cart.IsEmpty():
		return StateAnonymousEmpty
	case s.User == nil:
		return StateAnonymousWithItems
	case s.Cart.IsEmpty():
		return StateAuthenticatedEmpty
	default:
		return StateAuthenticatedWithItems
	}
}

func (s *Session) IsAuthenticated() bool {
	return s.User != nil
}

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Blank sessions (anonymous, empty cart) that were never stored are not worth
// persisting.
func (s *Session) shouldPersist() bool {
	if s.destroyed {
		return false
	}

	return !s.isNew || s.State() != StateAnonymousEmpty
}

// Login attaches user and moves the session to a fresh id.
func (s *Session) Login(user *models.User) {
	s.Rotate()
	s.User = user
}

// Rotate assigns a fresh id; the record under the old id is removed on save.
func (s *Session) Rotate() {
	if s.rotatedFrom == "" && !s.isNew {
		s.rotatedFrom = s.ID
	}
	s.ID = uuid.NewString()
}

// Destroy marks the session for deletion at the end of the request.
func (s *Session) Destroy() {
	s.destroyed = true
}

func (s *Session) Destroyed() bool {
	return s.destroyed
}

type contextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)

	return s, ok && s != nil
}
