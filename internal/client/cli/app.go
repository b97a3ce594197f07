// Package cli renders the interactive views of the HRM client: login,
// signup, dashboard, profile, employee directory, and the password-reset
// flow. Views are addressed by path and every navigation goes through the
// route guard.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	_ "modernc.org/sqlite"

	"github.com/WTLInterns/hrm-cli/internal/client/client"
	"github.com/WTLInterns/hrm-cli/internal/client/config"
	"github.com/WTLInterns/hrm-cli/internal/client/repositories/localstore"
	"github.com/WTLInterns/hrm-cli/internal/client/routes"
	"github.com/WTLInterns/hrm-cli/internal/client/services"
	"github.com/WTLInterns/hrm-cli/internal/client/session"
	"github.com/WTLInterns/hrm-cli/internal/logging"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	session   *session.Store
	guard     *routes.Guard
	auth      services.AuthService
	reset     *services.ResetFlow
	employees *services.EmployeeService

	reader *bufio.Reader
	out    io.Writer

	// fromLogout is a one-shot flag carried through a single navigation:
	// immediately after an explicit logout the login view must not bounce
	// an apparently-authenticated user back to the dashboard.
	fromLogout bool

	// closed marks the app as torn down; background continuations check it
	// before touching app state.
	closed atomic.Bool
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := localstore.InitDatabase(ctx, cfg.LocalDBPath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	store := localstore.NewSQLiteRepository(db)
	sess := session.NewStore(ctx, store, log)
	apiClient := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log)

	a := &App{
		config:    cfg,
		log:       log,
		db:        db,
		session:   sess,
		auth:      services.NewAuthService(apiClient, sess, store, log),
		reset:     services.NewResetFlow(apiClient, store, log),
		employees: services.NewEmployeeService(apiClient, sess, store, log),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
	a.guard = routes.NewGuard(sess, func(msg string) {
		fmt.Fprintln(a.out, msg)
	})
	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()

	// A persisted session may be stale; refresh the principal in the
	// background without blocking the first prompt. A failed refresh keeps
	// the session as is.
	if a.session.Current() != nil {
		go func() {
			if a.closed.Load() {
				return
			}
			_ = a.auth.FetchProfile(ctx)
		}()
	}

	a.loop(ctx)
}

// Close tears the app down. Safe to call more than once.
func (a *App) Close() {
	if a.closed.CompareAndSwap(false, true) {
		a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}
