package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/WTLInterns/hrm-cli/internal/client/services"
)

// ForgotPasswordView runs the first step of the password reset: the user
// enters an email and the backend sends an OTP to it. On success the user
// continues straight into the verification view.
func (a *App) ForgotPasswordView(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return
	}

	fmt.Fprintln(a.out, "Sending OTP...")
	if err := a.reset.RequestOTP(ctx, email); err != nil {
		// Both validation failures and the composite request failure carry
		// user-safe text.
		fmt.Fprintln(a.out, err.Error())
		return
	}

	fmt.Fprintln(a.out, "An OTP has been sent to your email.")
	a.ResetPasswordView(ctx)
}

// ResetPasswordView runs the second step: OTP plus new password. Entering
// it without a pending reset (direct navigation, restart) bounces back to
// the email step; verification with an unknown email is never attempted.
func (a *App) ResetPasswordView(ctx context.Context) {
	if !a.reset.Pending(ctx) {
		fmt.Fprintln(a.out, "Please request an OTP first.")
		a.ForgotPasswordView(ctx)
		return
	}

	otp, err := getSimpleText(a.reader, "OTP", a.out)
	if err != nil {
		return
	}
	newPassword, err := getPassword("New password", a.out)
	if err != nil {
		return
	}
	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return
	}

	fmt.Fprintln(a.out, "Resetting password...")
	if err := a.reset.VerifyAndReset(ctx, otp, newPassword, confirm); err != nil {
		switch {
		case services.IsValidationError(err):
			fmt.Fprintln(a.out, err.Error())
		case errors.Is(err, services.ErrNoPendingReset):
			fmt.Fprintln(a.out, "Please request an OTP first.")
			a.ForgotPasswordView(ctx)
		default:
			fmt.Fprintln(a.out, "Invalid or expired OTP. Please try again.")
		}
		return
	}

	fmt.Fprintln(a.out, "Your password has been reset. Please log in.")
	a.LoginView(ctx)
}
