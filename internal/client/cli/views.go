package cli

import (
	"context"
	"fmt"
)

// DashboardView is the landing view after login.
func (a *App) DashboardView(ctx context.Context) {
	p := a.session.Current()
	if p == nil {
		return
	}
	fmt.Fprintf(a.out, "Dashboard — %s (%s)\n", p.Name, p.Role)
	fmt.Fprintln(a.out, "Type 'profile' or 'employees' to continue.")
}

// ProfileView refreshes the principal from the backend and displays it.
// A failed refresh falls back to the session's current copy.
func (a *App) ProfileView(ctx context.Context) {
	_ = a.auth.FetchProfile(ctx)

	p := a.session.Current()
	if p == nil {
		return
	}
	fmt.Fprintf(a.out, "Name:  %s\n", p.Name)
	fmt.Fprintf(a.out, "Email: %s\n", p.Email)
	fmt.Fprintf(a.out, "Role:  %s\n", p.Role)
	if p.ProfileImage != "" {
		fmt.Fprintf(a.out, "Photo: %s\n", p.ProfileImage)
	}
}

// EmployeesView lists the employee directory.
func (a *App) EmployeesView(ctx context.Context) {
	list, err := a.employees.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load the employee list. Please try again later.")
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No employees found.")
		return
	}
	for _, e := range list {
		fmt.Fprintf(a.out, "%6d  %-25s %-30s %-15s %s\n", e.ID, e.FullName, e.Email, e.JobRole, e.Status)
	}
}
