// Package services contains the application services of the HRM client:
// authentication, the password-reset flow, and the employee directory.
package services

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/client/repositories/localstore"
	"github.com/WTLInterns/hrm-cli/internal/client/session"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

// ErrSubmitInFlight is returned when a login or registration is attempted
// while another one is still outstanding. The duplicate attempt performs no
// network call; callers should treat it as a no-op, not queue a retry.
var ErrSubmitInFlight = errors.New("submission already in flight")

// AuthService defines the authentication operations of the client. It is
// the only component that translates API responses into session updates.
//
// Contract:
//   - Login: authenticate and establish the session.
//   - Register: create an account and establish the session.
//   - Logout: clear the session and all session-scoped persisted state;
//     idempotent.
//   - FetchProfile: refresh the principal from the backend; a failed
//     refresh never invalidates the session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Principal, error)
	Register(ctx context.Context, req client.RegisterRequest) (*models.Principal, error)
	Logout(ctx context.Context) error
	FetchProfile(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Store
	store   localstore.Repository
	log     logging.Logger

	// submitting guards the Idle -> Submitting transition of a login or
	// registration attempt. While set, duplicate submissions are rejected.
	submitting atomic.Bool
}

// NewAuthService constructs an AuthService bound to the given API client,
// session store, and local storage.
func NewAuthService(c client.Client, s *session.Store, store localstore.Repository, log logging.Logger) AuthService {
	return &authService{client: c, session: s, store: store, log: log}
}

// Login authenticates with the backend and, on success, installs the
// returned principal and token in the session store. A second call while
// one is in flight returns ErrSubmitInFlight without touching the network.
func (a *authService) Login(ctx context.Context, email, password string) (*models.Principal, error) {
	if !a.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer a.submitting.Store(false)

	p, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return nil, err
	}

	if err := a.session.SetToken(ctx, token); err != nil {
		a.log.Warn(ctx, "failed to persist token", "error", err)
	}
	if err := a.session.SetPrincipal(ctx, p); err != nil {
		a.log.Warn(ctx, "failed to persist principal", "error", err)
	}

	a.log.Info(ctx, "logged in", "email", p.Email, "role", p.Role)
	return p, nil
}

// Register creates a new account and establishes the session, mirroring
// Login. Shares the single-flight guard with Login: the UI submits either,
// never both.
func (a *authService) Register(ctx context.Context, req client.RegisterRequest) (*models.Principal, error) {
	if !a.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer a.submitting.Store(false)

	p, token, err := a.client.Register(ctx, req)
	if err != nil {
		a.log.Warn(ctx, "registration failed", "email", req.Email, "error", err)
		return nil, err
	}

	if err := a.session.SetToken(ctx, token); err != nil {
		a.log.Warn(ctx, "failed to persist token", "error", err)
	}
	if err := a.session.SetPrincipal(ctx, p); err != nil {
		a.log.Warn(ctx, "failed to persist principal", "error", err)
	}

	a.log.Info(ctx, "registered", "email", p.Email)
	return p, nil
}

// Logout clears the session and every other session-scoped persisted key:
// the bearer token, any pending password-reset state, and cached employee
// data. Calling it with no session present is a no-op, not an error.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.SetPrincipal(ctx, nil); err != nil {
		a.log.Warn(ctx, "failed to clear persisted principal", "error", err)
	}
	if err := a.session.SetToken(ctx, ""); err != nil {
		a.log.Warn(ctx, "failed to clear persisted token", "error", err)
	}

	for _, key := range []string{localstore.KeyEmployees, localstore.KeyResetEmail, localstore.KeyResetUserType} {
		if err := a.store.Delete(ctx, key); err != nil {
			a.log.Warn(ctx, "failed to clear persisted key", "key", key, "error", err)
		}
	}

	a.log.Info(ctx, "logged out")
	return nil
}

// FetchProfile refreshes the principal from the backend. Without a bearer
// token it returns immediately. A failed refresh is logged and the existing
// session left untouched; profile refreshes are not session-invalidating.
func (a *authService) FetchProfile(ctx context.Context) error {
	token := a.session.Token()
	if token == "" {
		return nil
	}

	p, err := a.client.Profile(ctx, token)
	if err != nil {
		a.log.Warn(ctx, "profile refresh failed, keeping current session", "error", err)
		return nil
	}

	return a.session.SetPrincipal(ctx, p)
}
