package session

import (
	"context"
	"fmt"
	"time"

	"github.com/LeoR1u/ProyectoLegos/internal/cache"
	"github.com/LeoR1u/ProyectoLegos/internal/models"
)

type Store interface {
	// Load returns nil without error when no session exists under id.
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type cacheStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewStore keeps sessions in c. Every save refreshes the expiry to ttl.
func NewStore(c cache.Cache, ttl time.Duration) Store {
	return &cacheStore{cache: c, ttl: ttl}
}

func (s *cacheStore) Load(ctx context.Context, id string) (*Session, error) {
	var sess Session

	found, err := s.cache.Get(ctx, cache.Key(cache.SessionKeyPrefix, id), &sess)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if !found {
		return nil, nil
	}

	if sess.Cart == nil {
		sess.Cart = models.NewCart()
	}
	sess.ID = id

	return &sess, nil
}

func (s *cacheStore) Save(ctx context.Context, sess *Session) error {
	if err := s.cache.Set(ctx, cache.Key(cache.SessionKeyPrefix, sess.ID), sess, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *cacheStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, cache.Key(cache.SessionKeyPrefix, id)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
