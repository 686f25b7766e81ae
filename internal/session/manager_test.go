package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/config"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
	"github.com/LeoR1u/ProyectoLegos/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu       sync.Mutex
	data     map[string]*session.Session
	deleted  []string
	saveErr  error
	loadErr  error
	saveHits int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]*session.Session)}
}

func (m *memStore) Load(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}

	stored, ok := m.data[id]
	if !ok {
		return nil, nil
	}

	// Stored sessions come back the way a decoded record would.
	return &session.Session{ID: id, User: stored.User, Cart: &models.Cart{Items: stored.Cart.Snapshot()}, CreatedAt: stored.CreatedAt}, nil
}

func (m *memStore) Save(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveHits++
	if m.saveErr != nil {
		return m.saveErr
	}

	m.data[s.ID] = &session.Session{ID: s.ID, User: s.User, Cart: &models.Cart{Items: s.Cart.Snapshot()}, CreatedAt: s.CreatedAt}

	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleted = append(m.deleted, id)
	delete(m.data, id)

	return nil
}

var testKey = []byte("test-session-key")

func newManager(store session.Store) *session.Manager {
	return session.NewManager(store, testKey, config.Session{CookieName: "lego_sid", TTL: time.Hour}, false)
}

func cookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "lego_sid" {
			return c
		}
	}

	return nil
}

func TestManagerCookieRoundTrip(t *testing.T) {
	// Arrange
	manager := newManager(newMemStore())
	sess := session.New()
	addBrick(t, sess)
	rec := httptest.NewRecorder()

	// Act
	require.NoError(t, manager.PrepareResponse(rec, sess))

	// Assert
	cookie := cookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	id, ok := manager.SessionID(req)
	assert.True(t, ok)
	assert.Equal(t, sess.ID, id)
}

func TestManagerSessionID(t *testing.T) {
	manager := newManager(newMemStore())

	t.Run("No cookie", func(t *testing.T) {
		_, ok := manager.SessionID(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})

	t.Run("Tampered cookie", func(t *testing.T) {
		// Arrange
		claims := &session.Claims{SessionID: "forged"}
		value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lego_sid", Value: value})

		// Act
		_, ok := manager.SessionID(req)

		// Assert
		assert.False(t, ok)
	})

	t.Run("Expired cookie", func(t *testing.T) {
		// Arrange
		claims := &session.Claims{
			SessionID: "old",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lego_sid", Value: value})

		// Act
		_, ok := manager.SessionID(req)

		// Assert
		assert.False(t, ok)
	})
}

func TestManagerLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty id gives a new session", func(t *testing.T) {
		manager := newManager(newMemStore())

		sess, err := manager.Load(ctx, "")

		require.NoError(t, err)
		assert.True(t, sess.IsNew())
	})

	t.Run("Unknown id is not reused", func(t *testing.T) {
		manager := newManager(newMemStore())

		sess, err := manager.Load(ctx, "missing")

		require.NoError(t, err)
		assert.True(t, sess.IsNew())
		assert.NotEqual(t, "missing", sess.ID)
	})

	t.Run("Stored session", func(t *testing.T) {
		// Arrange
		store := newMemStore()
		manager := newManager(store)
		original := session.New()
		addBrick(t, original)
		require.NoError(t, manager.Commit(ctx, original))

		// Act
		sess, err := manager.Load(ctx, original.ID)

		// Assert
		require.NoError(t, err)
		assert.False(t, sess.IsNew())
		assert.Equal(t, 1, sess.Cart.ItemCount())
	})

	t.Run("Store failure", func(t *testing.T) {
		store := newMemStore()
		store.loadErr = errors.New("redis down")
		manager := newManager(store)

		sess, err := manager.Load(ctx, "abc")

		require.Error(t, err)
		assert.Nil(t, sess)
	})
}

func TestManagerCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("Blank new session is not persisted", func(t *testing.T) {
		// Arrange
		store := newMemStore()
		manager := newManager(store)
		rec := httptest.NewRecorder()
		sess := session.New()

		// Act
		require.NoError(t, manager.PrepareResponse(rec, sess))
		require.NoError(t, manager.Commit(ctx, sess))

		// Assert
		assert.Nil(t, cookieFrom(t, rec))
		assert.Zero(t, store.saveHits)
	})

	t.Run("Login rotates and removes the old record", func(t *testing.T) {
		// Arrange
		store := newMemStore()
		manager := newManager(store)
		first := session.New()
		addBrick(t, first)
		require.NoError(t, manager.Commit(ctx, first))

		loaded, err := manager.Load(ctx, first.ID)
		require.NoError(t, err)

		// Act
		loaded.Login(&models.User{ID: uuid.New(), Username: "benny"})
		require.NoError(t, manager.Commit(ctx, loaded))

		// Assert
		assert.NotEqual(t, first.ID, loaded.ID)
		assert.Contains(t, store.deleted, first.ID)

		again, err := manager.Load(ctx, loaded.ID)
		require.NoError(t, err)
		assert.True(t, again.IsAuthenticated())
		assert.Equal(t, 1, again.Cart.ItemCount())
	})

	t.Run("Destroy deletes the record and clears the cookie", func(t *testing.T) {
		// Arrange
		store := newMemStore()
		manager := newManager(store)
		first := session.New()
		first.Login(&models.User{ID: uuid.New(), Username: "lucy"})
		require.NoError(t, manager.Commit(ctx, first))

		loaded, err := manager.Load(ctx, first.ID)
		require.NoError(t, err)
		rec := httptest.NewRecorder()

		// Act
		loaded.Destroy()
		require.NoError(t, manager.PrepareResponse(rec, loaded))
		require.NoError(t, manager.Commit(ctx, loaded))

		// Assert
		assert.Contains(t, store.deleted, first.ID)
		cookie := cookieFrom(t, rec)
		require.NotNil(t, cookie)
		assert.Equal(t, -1, cookie.MaxAge)

		gone, err := manager.Load(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, gone.IsNew())
	})

	t.Run("Save failure is returned", func(t *testing.T) {
		store := newMemStore()
		store.saveErr = errors.New("redis down")
		manager := newManager(store)
		sess := session.New()
		addBrick(t, sess)

		err := manager.Commit(ctx, sess)

		require.Error(t, err)
		assert.ErrorIs(t, err, store.saveErr)
	})
}
