package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/WTLInterns/hrm-cli/internal/client/routes"
)

// navIface is the minimal surface the command loop needs. The real App
// satisfies it; tests can provide a lightweight stub.
type navIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, path string)
}

// commandPaths maps loop commands to view paths.
var commandPaths = map[string]string{
	"login":     routes.PathLogin,
	"signup":    routes.PathSignup,
	"logout":    routes.PathLogout,
	"dashboard": routes.PathDashboard,
	"d":         routes.PathDashboard,
	"profile":   routes.PathProfile,
	"employees": routes.PathEmployees,
	"e":         routes.PathEmployees,
	"forgot":    routes.PathForgotPassword,
	"reset":     routes.PathResetPassword,
}

func (a *App) getStatus() string {
	if p := a.session.Current(); p != nil {
		return fmt.Sprintf("(%s %s)", p.Email, p.Role)
	}
	return ""
}

func (a *App) loop(ctx context.Context) {
	fmt.Fprintln(a.out, "HRM client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runLoop(ctx, a, a.getStatus, scanner, a.out)
}

// runLoop reads commands, resolves each to a view path, and navigates. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
func runLoop(ctx context.Context, nav navIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprintf(out, "hrm %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		switch cmd {
		case "help":
			if nav.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: (d)ashboard, profile, (e)mployees, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login, signup, forgot, exit")
			}

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			path, ok := commandPaths[cmd]
			if !ok {
				fmt.Fprintln(out, "Unknown command:", cmd)
				continue
			}
			nav.Navigate(ctx, path)
		}
	}
}

// Navigate renders the view at path, first passing the request through the
// route guard. A denied navigation lands on the login view instead.
func (a *App) Navigate(ctx context.Context, path string) {
	if a.guard.Check(path) == routes.RedirectToLogin {
		path = routes.PathLogin
	}

	switch path {
	case routes.PathLogin:
		a.LoginView(ctx)
	case routes.PathSignup:
		a.SignupView(ctx)
	case routes.PathLogout:
		a.LogoutView(ctx)
	case routes.PathDashboard:
		a.DashboardView(ctx)
	case routes.PathProfile:
		a.ProfileView(ctx)
	case routes.PathEmployees:
		a.EmployeesView(ctx)
	case routes.PathForgotPassword:
		a.ForgotPasswordView(ctx)
	case routes.PathResetPassword:
		a.ResetPasswordView(ctx)
	}
}
