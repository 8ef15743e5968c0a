// Package session is the single source of truth for the client's
// authentication state. It combines the persisted token, the cached
// profile and the credential flows behind one object that is built once at
// startup and passed to every consumer.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

// ErrNotAuthenticated is returned by session-only reads without a token.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the authentication state of the session.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Snapshot is what subscribers receive on every state change.
type Snapshot struct {
	State State
	Token string
}

// TokenStore is the durable token storage the session mediates.
type TokenStore interface {
	Read() (string, bool)
	Clear()
	Err() error
}

// ProfileCache is the profile memoization the session gates.
type ProfileCache interface {
	SetEnabled(enabled bool)
	Restart()
	Current() *models.Profile
	Get(ctx context.Context) (*models.Profile, error)
	Refetch()
}

type Session struct {
	store    TokenStore
	auth     services.AuthService
	profiles ProfileCache
	log      logging.Logger

	// transition serializes token changes together with the store check
	// and the profile cache toggle that go with them.
	transition sync.Mutex

	mu    sync.RWMutex
	token string

	subsMu sync.Mutex
	subs   map[int]func(Snapshot)
	nextID int
}

// New reads the token store synchronously: a stored token starts the
// session Authenticated and enables the profile cache.
func New(store TokenStore, auth services.AuthService, profiles ProfileCache, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewDiscard()
	}
	s := &Session{
		store:    store,
		auth:     auth,
		profiles: profiles,
		log:      log.With("component", "session"),
		subs:     make(map[int]func(Snapshot)),
	}

	if token, ok := store.Read(); ok {
		s.token = token
		profiles.SetEnabled(true)
	}
	return s
}

// State reports whether a session token is held.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateOf(s.token)
}

// AccessToken returns the in-memory session token.
func (s *Session) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: stateOf(s.token), Token: s.token}
}

// Claims decodes the current token's payload without verifying it.
func (s *Session) Claims() (*Claims, error) {
	token, ok := s.AccessToken()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return ParseClaims(token)
}

func (s *Session) Signup(ctx context.Context, creds services.SignupCredentials) services.FlowResult {
	res := s.auth.Signup(ctx, creds)
	s.adopt(ctx, res.Token)
	return res
}

func (s *Session) Login(ctx context.Context, creds services.LoginCredentials) services.FlowResult {
	res := s.auth.Login(ctx, creds)
	s.adopt(ctx, res.Token)
	return res
}

// RequestPasswordReset never changes the session state.
func (s *Session) RequestPasswordReset(ctx context.Context, req services.ResetRequest) services.ResetRequestResult {
	return s.auth.RequestPasswordReset(ctx, req)
}

// ConfirmPasswordReset establishes the session with the token issued by
// the reset, like Login does.
func (s *Session) ConfirmPasswordReset(ctx context.Context, req services.ResetConfirm) services.FlowResult {
	res := s.auth.ConfirmPasswordReset(ctx, req)
	s.adopt(ctx, res.Token)
	return res
}

// Logout drops the session locally. It performs no network call and
// cannot fail; calling it while unauthenticated changes nothing.
func (s *Session) Logout() {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.store.Clear()
	s.setToken("")
}

// Profile returns a fresh profile, fetching if needed.
func (s *Session) Profile(ctx context.Context) (*models.Profile, error) {
	if s.State() == Unauthenticated {
		return nil, ErrNotAuthenticated
	}
	return s.profiles.Get(ctx)
}

// CurrentProfile returns whatever profile is cached, possibly nil.
func (s *Session) CurrentProfile() *models.Profile {
	if s.State() == Unauthenticated {
		return nil
	}
	return s.profiles.Current()
}

// RefetchProfile forces a background profile fetch.
func (s *Session) RefetchProfile() {
	if s.State() == Unauthenticated {
		return
	}
	s.profiles.Refetch()
}

// Subscribe registers fn for state changes. The returned func unregisters it.
// fn runs synchronously inside the transition and must not call Logout or
// the flows.
func (s *Session) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// adopt switches to a token a flow just persisted. The token is adopted
// only while the store still holds it, so a Logout that raced the flow wins.
func (s *Session) adopt(ctx context.Context, token string) {
	if token == "" {
		return
	}

	s.transition.Lock()
	defer s.transition.Unlock()

	if err := s.store.Err(); err != nil {
		s.log.Warn(ctx, "token not adopted, storage unavailable", "error", err)
		return
	}
	if stored, ok := s.store.Read(); !ok || stored != token {
		s.log.Debug(ctx, "token not adopted, store no longer holds it")
		return
	}
	s.setToken(token)
}

// setToken must be called with s.transition held. The profile cache is
// disabled before the token is dropped and enabled after it is set, so a
// live fetch never outlives the token it was started for.
func (s *Session) setToken(token string) {
	s.mu.RLock()
	prev := s.token
	s.mu.RUnlock()

	if prev == token {
		return
	}

	switch {
	case token == "":
		s.profiles.SetEnabled(false)
		s.swap(token)
	case prev == "":
		s.swap(token)
		s.profiles.SetEnabled(true)
	default:
		s.swap(token)
		s.profiles.Restart()
	}

	s.notify(Snapshot{State: stateOf(token), Token: token})
}

func (s *Session) swap(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) notify(snap Snapshot) {
	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func stateOf(token string) State {
	if token == "" {
		return Unauthenticated
	}
	return Authenticated
}
