package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// consumeFromLogout reads and clears the one-shot logout flag.
func (a *App) consumeFromLogout() bool {
	v := a.fromLogout
	a.fromLogout = false
	return v
}

// LoginView renders the login form. An already-authenticated user is sent
// to the dashboard instead, unless this navigation immediately follows an
// explicit logout; right after logout the login view must stay put.
func (a *App) LoginView(ctx context.Context) {
	fromLogout := a.consumeFromLogout()
	if a.isLoggedIn() && !fromLogout {
		a.DashboardView(ctx)
		return
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return
	}

	fmt.Fprintln(a.out, "Signing in...")
	p, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, services.ErrSubmitInFlight) {
			return
		}
		a.printAuthError(err)
		return
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", p.Name)
	a.DashboardView(ctx)
}

// SignupView renders the registration form.
func (a *App) SignupView(ctx context.Context) {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return
	}

	fmt.Fprintln(a.out, "Creating account...")
	p, err := a.auth.Register(ctx, client.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSubmitInFlight):
		case errors.Is(err, client.ErrDuplicateAccount):
			fmt.Fprintln(a.out, "An account with this email already exists.")
		case errors.Is(err, client.ErrTimeout), errors.Is(err, client.ErrUnavailable):
			fmt.Fprintln(a.out, "Cannot reach the server. Please try again later.")
		default:
			fmt.Fprintln(a.out, "Registration failed. Please try again.")
		}
		return
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", p.Name)
	a.DashboardView(ctx)
}

// LogoutView clears the session and shows the logged-out confirmation.
// Safe to enter with no session present.
func (a *App) LogoutView(ctx context.Context) {
	_ = a.auth.Logout(ctx)
	a.fromLogout = true
	fmt.Fprintln(a.out, "You have been logged out.")
}

func (a *App) printAuthError(err error) {
	switch {
	case errors.Is(err, client.ErrTimeout):
		fmt.Fprintln(a.out, "The request timed out. Please try again.")
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server. Please try again later.")
	default:
		fmt.Fprintln(a.out, "Invalid email or password. Please try again.")
	}
}
