// Package session owns the console's credential: it keeps the raw bearer
// string, persists it across restarts and decodes the identity it carries.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/booky/internal/client/events"
	"github.com/dmitrijs2005/booky/internal/client/models"
	"github.com/dmitrijs2005/booky/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/booky/internal/common"
	"github.com/dmitrijs2005/booky/internal/logging"
)

var ErrEmptyCredential = errors.New("empty credential")

// Store is the single session object of the process. The application root
// creates it, hydrates it on start and injects it where the credential is
// needed. It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	credential string

	repo metadata.Repository
	bus  *events.Bus
	now  func() time.Time
	log  logging.Logger
}

type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithBus makes the store announce events.TopicSessionCleared.
func WithBus(b *events.Bus) Option {
	return func(s *Store) { s.bus = b }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore builds a store persisting to repo; nil repo keeps the credential
// in memory only.
func NewStore(repo metadata.Repository, opts ...Option) *Store {
	if repo == nil {
		repo = metadata.NewMemoryRepository()
	}
	s := &Store{
		repo: repo,
		now:  time.Now,
		log:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads a previously persisted credential. Nothing persisted is
// not an error; the store just stays unauthenticated.
func (s *Store) Hydrate(ctx context.Context) error {
	v, err := s.repo.Get(ctx, common.CredentialMetadataKey)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	s.mu.Lock()
	s.credential = string(v)
	s.mu.Unlock()

	if len(v) > 0 {
		s.log.Debug(ctx, "credential restored")
	}
	return nil
}

// SetSession stores and persists a freshly issued credential. Replacing a
// credential that belonged to another subject counts as a session change.
func (s *Store) SetSession(ctx context.Context, credential string) error {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ErrEmptyCredential
	}

	s.mu.Lock()
	prev := subjectOf(s.credential)
	if err := s.repo.Set(ctx, common.CredentialMetadataKey, []byte(credential)); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist credential: %w", err)
	}
	s.credential = credential
	s.mu.Unlock()

	if prev != "" && prev != subjectOf(credential) {
		s.bus.Publish(events.SessionCleared())
	}
	return nil
}

// Token returns the raw credential, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// Decoded returns the identity carried by the current credential, or nil
// when there is none or it cannot be decoded.
func (s *Store) Decoded() *models.Session {
	sess, err := Decode(s.Token())
	if err != nil {
		return nil
	}
	return sess
}

// IsAuthenticated reports whether a decodable, unexpired credential is held.
// An expired credential is evicted on the way out, in memory and on disk.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	s.mu.Lock()
	if s.credential == "" {
		s.mu.Unlock()
		return false
	}

	sess, err := Decode(s.credential)
	if err != nil {
		s.mu.Unlock()
		return false
	}

	if !sess.Expired(s.now()) {
		s.mu.Unlock()
		return true
	}

	s.credential = ""
	err = s.repo.Delete(ctx, common.CredentialMetadataKey)
	s.mu.Unlock()

	if err != nil {
		s.log.Warn(ctx, "failed to remove expired credential", "error", err)
	}
	s.log.Info(ctx, "session expired", "subject", sess.Subject)
	s.bus.Publish(events.SessionCleared())
	return false
}

// Logout drops the credential everywhere, wipes the local store and tells
// subscribers to forget whatever they cached for the old session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.credential = ""
	err := s.repo.Clear(ctx)
	s.mu.Unlock()

	s.bus.Publish(events.SessionCleared())
	if err != nil {
		return fmt.Errorf("clear local store: %w", err)
	}
	return nil
}

func subjectOf(credential string) string {
	if credential == "" {
		return ""
	}
	sess, err := Decode(credential)
	if err != nil {
		return ""
	}
	return sess.Subject
}
