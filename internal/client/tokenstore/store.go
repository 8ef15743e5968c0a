package tokenstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

const defaultOpTimeout = 2 * time.Second

// Store holds at most one session token under common.AccessTokenStorageKey.
type Store struct {
	backend   Backend
	key       string
	log       logging.Logger
	opTimeout time.Duration

	mu     sync.Mutex
	broken error
}

// Option customises a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithOpTimeout bounds every backend call.
func WithOpTimeout(d time.Duration) Option {
	return func(s *Store) { s.opTimeout = d }
}

// New wraps backend. A nil log discards storage warnings.
func New(backend Backend, log logging.Logger, opts ...Option) *Store {
	if log == nil {
		log = logging.NewDiscard()
	}
	s := &Store{
		backend:   backend,
		key:       common.AccessTokenStorageKey,
		log:       log,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the persisted token. An empty stored value counts as absent.
func (s *Store) Read() (string, bool) {
	if s.degraded() {
		return "", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	token, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, common.ErrorNotFound) {
		return "", false
	}
	if err != nil {
		s.fail(ctx, "read", err)
		return "", false
	}
	return token, token != ""
}

// Write persists token, replacing any prior value.
func (s *Store) Write(token string) {
	if s.degraded() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	if err := s.backend.Set(ctx, s.key, token); err != nil {
		s.fail(ctx, "write", err)
	}
}

// Clear removes the persisted token.
func (s *Store) Clear() {
	if s.degraded() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	if err := s.backend.Delete(ctx, s.key); err != nil {
		s.fail(ctx, "clear", err)
	}
}

// Err reports the storage failure that degraded the store, if any.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broken
}

func (s *Store) degraded() bool {
	return s.Err() != nil
}

func (s *Store) fail(ctx context.Context, op string, err error) {
	serr := common.NewStorageError(op, err)

	s.mu.Lock()
	if s.broken == nil {
		s.broken = serr
	}
	s.mu.Unlock()

	s.log.Warn(ctx, "token storage unavailable, continuing unauthenticated", "op", op, "error", serr)
}
