package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the signed session cookie.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type Manager struct {
	store      Store
	key        []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewManager(store Store, key []byte, cfg config.Session, secureCookie bool) *Manager {
	return &Manager{
		store:      store,
		key:        key,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     secureCookie,
	}
}

// SessionID extracts the session id from a validly signed, unexpired cookie.
func (m *Manager) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", false
	}

	return claims.SessionID, true
}

// Load returns the stored session for id, or a new one when id is empty or
// unknown. Unknown ids are not reused.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return New(), nil
	}

	sess, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess == nil {
		return New(), nil
	}

	return sess, nil
}

func (m *Manager) signedValue(id string) (string, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// PrepareResponse sets or clears the cookie. It must run before the first
// byte of the response is written.
func (m *Manager) PrepareResponse(w http.ResponseWriter, s *Session) error {
	if s.destroyed {
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
		return nil
	}

	if !s.shouldPersist() {
		return nil
	}

	value, err := m.signedValue(s.ID)
	if err != nil {
		return fmt.Errorf("failed to sign session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Commit writes the end-of-request state of s to the store.
func (m *Manager) Commit(ctx context.Context, s *Session) error {
	var errs []error

	if s.rotatedFrom != "" {
		if err := m.store.Delete(ctx, s.rotatedFrom); err != nil {
			errs = append(errs, err)
		}
	}

	switch {
	case s.destroyed:
		if !s.isNew && s.rotatedFrom == "" {
			if err := m.store.Delete(ctx, s.ID); err != nil {
				errs = append(errs, err)
			}
		}
	case s.shouldPersist():
		if err := m.store.Save(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
