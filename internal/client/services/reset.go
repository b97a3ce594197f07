package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/models"
	"github.com/WTLInterns/hrm-cli/internal/client/repositories/localstore"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

// ResetState enumerates the states of the password-reset flow.
type ResetState string

const (
	StateAwaitingEmail ResetState = "awaiting_email"
	StateOtpRequested  ResetState = "otp_requested"
	StateCompleted     ResetState = "completed"
	// StateFailed is non-terminal; the user may retry the step that failed.
	StateFailed ResetState = "failed"
)

// ErrOTPSendFailed is returned when neither role-specific endpoint accepted
// the OTP request. The text is the exact user-facing message; the underlying
// per-endpoint errors go to the log only.
var ErrOTPSendFailed = errors.New("Failed to send OTP. Please check if the email is registered.")

// ErrNoPendingReset means the verify step was entered without transient
// reset state (direct navigation, or the state was already consumed).
// Callers must send the user back to the email-request step; verification
// with an unknown email or user type is never attempted.
var ErrNoPendingReset = errors.New("no password reset in progress")

// ValidationError reports a client-side field check failure. It blocks the
// network call entirely; the message is safe to show verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a client-side validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ResetFlow coordinates the two-step reset-by-OTP sequence across the
// forgot-password and reset-password views. The bridge between the two
// views is transient state ({email, user type}) persisted in local storage,
// independent of the session: the flow works for users who cannot log in.
type ResetFlow struct {
	client client.Client
	store  localstore.Repository
	log    logging.Logger

	mu         sync.Mutex
	state      ResetState
	invalidOTP bool
}

func NewResetFlow(c client.Client, store localstore.Repository, log logging.Logger) *ResetFlow {
	return &ResetFlow{client: c, store: store, log: log, state: StateAwaitingEmail}
}

// State returns the current flow state.
func (f *ResetFlow) State() ResetState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// InvalidOTP reports whether the last verify attempt was rejected by the
// backend. The flag resets on the next attempt.
func (f *ResetFlow) InvalidOTP() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidOTP
}

func (f *ResetFlow) setState(s ResetState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// RequestOTP asks the backend to email an OTP. The user's type is not known
// in advance, so the master-admin endpoint is tried first and, on any
// failure, the sub-admin endpoint second. The calls are strictly sequential, so an OTP
// is never double-sent. Whichever endpoint accepts determines the user type
// recorded in the transient reset state.
//
// Both endpoint errors are logged individually: a rejected unknown email
// and a backend outage take the same fallback path, and only the logs can
// tell them apart.
func (f *ResetFlow) RequestOTP(ctx context.Context, email string) error {
	if email == "" {
		return newValidationError("Email is required.")
	}

	userType := models.ResetUserMasterAdmin
	err := f.client.RequestPasswordReset(ctx, userType, email)
	if err != nil {
		f.log.Warn(ctx, "otp request failed, falling back", "user_type", userType, "error", err)

		userType = models.ResetUserSubAdmin
		if err = f.client.RequestPasswordReset(ctx, userType, email); err != nil {
			f.log.Warn(ctx, "otp request failed", "user_type", userType, "error", err)
			f.setState(StateFailed)
			return ErrOTPSendFailed
		}
	}

	if err := f.saveTransientState(ctx, email, userType); err != nil {
		f.setState(StateFailed)
		return err
	}

	f.setState(StateOtpRequested)
	f.log.Info(ctx, "otp requested", "email", email, "user_type", userType)
	return nil
}

// VerifyAndReset validates locally, then submits the OTP and new password
// to the endpoint selected by the transient state's user type. On success
// the transient state is consumed and the flow completes. On a backend
// rejection the flow stays where it is with invalidOTP set, so the user can
// retry without requesting a new OTP.
func (f *ResetFlow) VerifyAndReset(ctx context.Context, otp, newPassword, confirmPassword string) error {
	if len(otp) < 4 {
		return newValidationError("OTP must be at least 4 characters.")
	}
	if newPassword != confirmPassword {
		return newValidationError("Passwords do not match.")
	}
	if len(newPassword) < 8 {
		return newValidationError("Password must be at least 8 characters.")
	}

	email, userType, err := f.loadTransientState(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.invalidOTP = false
	f.mu.Unlock()

	if err := f.client.VerifyPasswordReset(ctx, userType, email, otp, newPassword); err != nil {
		f.mu.Lock()
		f.invalidOTP = true
		f.mu.Unlock()
		f.log.Warn(ctx, "otp verification failed", "user_type", userType, "error", err)
		return err
	}

	if err := f.clearTransientState(ctx); err != nil {
		f.log.Warn(ctx, "failed to clear reset state", "error", err)
	}
	f.setState(StateCompleted)
	f.log.Info(ctx, "password reset completed", "email", email)
	return nil
}

// Pending reports whether transient reset state exists, i.e. whether the
// verify view may be entered. Entered without it, the view must bounce back
// to the email step.
func (f *ResetFlow) Pending(ctx context.Context) bool {
	email, _, err := f.loadTransientState(ctx)
	return err == nil && email != ""
}

// Abandon discards any transient reset state and returns the flow to the
// beginning. Used when the user leaves the flow, so a stale {email, user
// type} pair from an earlier attempt can never leak into a later one.
func (f *ResetFlow) Abandon(ctx context.Context) error {
	if err := f.clearTransientState(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	f.state = StateAwaitingEmail
	f.invalidOTP = false
	f.mu.Unlock()
	return nil
}

func (f *ResetFlow) saveTransientState(ctx context.Context, email string, userType models.ResetUserType) error {
	return f.store.SetMany(ctx, map[string][]byte{
		localstore.KeyResetEmail:    []byte(email),
		localstore.KeyResetUserType: []byte(userType),
	})
}

func (f *ResetFlow) loadTransientState(ctx context.Context) (string, models.ResetUserType, error) {
	email, err := f.store.Get(ctx, localstore.KeyResetEmail)
	if err != nil {
		return "", "", err
	}
	userType, err := f.store.Get(ctx, localstore.KeyResetUserType)
	if err != nil {
		return "", "", err
	}
	if len(email) == 0 || len(userType) == 0 {
		return "", "", ErrNoPendingReset
	}
	return string(email), models.ResetUserType(userType), nil
}

func (f *ResetFlow) clearTransientState(ctx context.Context) error {
	if err := f.store.Delete(ctx, localstore.KeyResetEmail); err != nil {
		return err
	}
	return f.store.Delete(ctx, localstore.KeyResetUserType)
}
