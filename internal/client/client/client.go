// Package client is the transport layer of the HRM CLI: the only code that
// talks to the remote REST backend. It normalizes backend responses into the
// models understood by the rest of the client and translates transport and
// HTTP failures into the sentinel errors of this package, so raw backend
// payloads never reach the view layer.
package client

import (
	"context"

	"github.com/WTLInterns/hrm-cli/internal/client/models"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Client is the remote HRM API as consumed by this application.
//
// All methods honor context cancellation and the configured request timeout.
// Login and Register return the authenticated principal together with the
// bearer token issued by the backend.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.Principal, string, error)
	Register(ctx context.Context, req RegisterRequest) (*models.Principal, string, error)
	Profile(ctx context.Context, token string) (*models.Principal, error)
	RequestPasswordReset(ctx context.Context, userType models.ResetUserType, email string) error
	VerifyPasswordReset(ctx context.Context, userType models.ResetUserType, email, otp, newPassword string) error
	Employees(ctx context.Context, token string) ([]models.Employee, error)
}
