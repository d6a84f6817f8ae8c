package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/collections"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/recommend"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/services"
	"github.com/dmitrijs2005/pantrykeeper/internal/client/session"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config        *config.Config
	authService   services.AuthService
	pantryService services.PantryService
	log           logging.Logger
	db            *sql.DB
	reader        *bufio.Reader
	out           io.Writer
	now           func() time.Time

	mu       sync.Mutex
	userName string
	mode     Mode
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	repo := slots.NewSQLiteRepository(db)
	sessions := session.NewStore(repo)

	apiClient := client.NewHTTPClient(c.ServerURL, sessions,
		client.WithRenewTimeout(c.RefreshTimeout),
		client.WithLogger(log.With("component", "client")),
	)
	pantry := collections.NewPantry(repo, collections.WithLogger(log.With("component", "collections")))

	return &App{
		config:        c,
		authService:   services.NewAuthService(apiClient, sessions),
		pantryService: services.NewPantryService(pantry, recommend.Catalog()),
		log:           log,
		db:            db,
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		now:           time.Now,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to PantryKeeper CLI (type 'help' for commands)")

	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	ok, err := a.authService.IsAuthenticated(context.Background())
	if err != nil {
		a.log.Warn(context.Background(), "cannot read session", "error", err)
		return false
	}
	return ok
}

// restoreSession picks up a session persisted by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	u, err := a.authService.CurrentUser(ctx)
	switch {
	case err == nil:
		a.setUser(u.Username)
		a.setMode(ModeOnline)
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Username)
	case errors.Is(err, client.ErrSessionExpired):
		fmt.Fprintln(a.out, "Your session has expired, please log in again")
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Server unavailable, working offline")
	default:
		a.log.Warn(ctx, "cannot restore session", "error", err)
	}
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// connectivity mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
