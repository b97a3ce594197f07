// Package session holds the single source of truth for "who is currently
// logged in". The in-memory principal and bearer token are mirrored
// synchronously to local storage, so a restart of the application does not
// lose the session.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/client/repositories/localstore"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

// Subscriber is notified synchronously whenever the principal changes.
// The callback runs before SetPrincipal returns.
type Subscriber func(p *models.Principal)

// Store is the session container. Only this package writes the "user" and
// "token" keys of local storage.
type Store struct {
	mu        sync.RWMutex
	principal *models.Principal
	token     string
	subs      []Subscriber

	repo localstore.Repository
	log  logging.Logger
}

// NewStore builds a Store and restores any persisted session. A malformed
// persisted principal is discarded: the corrupt entry is deleted, a warning
// is logged, and the store starts logged out. Corruption is never raised to
// the caller.
func NewStore(ctx context.Context, repo localstore.Repository, log logging.Logger) *Store {
	s := &Store{repo: repo, log: log}
	s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) {
	raw, err := s.repo.Get(ctx, localstore.KeyUser)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted session", "error", err)
		return
	}
	if raw == nil {
		return
	}

	var p models.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn(ctx, "discarding corrupted persisted session", "error", err)
		if err := s.repo.Delete(ctx, localstore.KeyUser); err != nil {
			s.log.Warn(ctx, "failed to remove corrupted session entry", "error", err)
		}
		return
	}
	s.principal = &p

	tok, err := s.repo.Get(ctx, localstore.KeyToken)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
	}
	s.token = string(tok)

	// The stored principal alone is treated as proof of a valid session,
	// matching the backend's expectations. An expired token means API calls
	// will start failing, so at least make that visible up front.
	if s.token != "" && tokenExpired(s.token) {
		s.log.Warn(ctx, "stored bearer token is expired; API requests will be rejected until the next login", "email", p.Email)
	}
}

// Current returns the principal, or nil when logged out. No I/O.
func (s *Store) Current() *models.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal.Clone()
}

// Token returns the bearer token, or an empty string.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetPrincipal updates the in-memory principal, mirrors it to local storage,
// and notifies subscribers, all before returning. Passing nil logs the user
// out and removes the persisted entry. A persistence failure is returned but
// the in-memory update and notifications still happen, so the UI never shows
// a state older than what the caller just set.
func (s *Store) SetPrincipal(ctx context.Context, p *models.Principal) error {
	s.mu.Lock()
	s.principal = p.Clone()
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	var persistErr error
	if p == nil {
		persistErr = s.repo.Delete(ctx, localstore.KeyUser)
	} else {
		data, err := json.Marshal(p)
		if err != nil {
			persistErr = err
		} else {
			persistErr = s.repo.Set(ctx, localstore.KeyUser, data)
		}
	}
	if persistErr != nil {
		s.log.Error(ctx, "failed to persist session", "error", persistErr)
	}

	for _, fn := range subs {
		fn(p.Clone())
	}
	return persistErr
}

// SetToken stores the bearer token alongside the principal. An empty token
// removes the persisted entry.
func (s *Store) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if token == "" {
		return s.repo.Delete(ctx, localstore.KeyToken)
	}
	return s.repo.Set(ctx, localstore.KeyToken, []byte(token))
}

// Subscribe registers fn to run on every principal change. Subscribers are
// invoked synchronously in registration order.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// TokenStale reports whether the stored token is a JWT whose expiry has
// passed. Tokens that are absent or not JWTs are not considered stale; the
// backend remains the authority on their validity.
func (s *Store) TokenStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && tokenExpired(s.token)
}

// tokenExpired inspects the exp claim without verifying the signature.
// The client has no key material; this is a hint for logging, not an
// authorization decision.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
