package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/VinkoRobi2/CameYa-sub001/internal/client/client"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/config"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/gate"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/services"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/session"
	"github.com/VinkoRobi2/CameYa-sub001/internal/client/storage"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// onlineCheckInterval is how often the backend's health endpoint is polled.
const onlineCheckInterval = 30 * time.Second

type App struct {
	config      *config.Config
	authService services.AuthService
	jobService  services.JobService
	store       *session.Store
	watcher     *gate.Watcher
	db          *sql.DB
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	mu       sync.Mutex
	Mode     Mode
	event    gate.Event
	shown    string
	repaint  bool
	returnTo string
}

// NewApp opens the session database and wires the API client, services and
// route gate together.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repo, db, err := storage.OpenRepository(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewStore(repo, session.WithLogger(log), session.WithTTL(c.SessionTTL))

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout,
		client.WithTokenSource(store), client.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, services.NewAuthService(apiClient, store, log),
		services.NewJobService(apiClient, store, log), store, log,
		bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, as services.AuthService, js services.JobService, store *session.Store,
	log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		config:      c,
		authService: as,
		jobService:  js,
		store:       store,
		log:         log,
		reader:      reader,
		out:         out,
	}
	a.watcher = gate.NewWatcher(store, gate.DefaultRoutes().Decide, a.onGate, log)
	return a
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run restores the persisted session and blocks in the REPL until the user
// leaves or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	a.watcher.Stop()
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated()
}

// onGate records every gate verdict. Pages are drawn by settle, once the
// command that caused the change has finished printing.
func (a *App) onGate(ev gate.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.event = ev
	if ev.From != "" {
		a.returnTo = ev.From
	}
}

// navigate moves to path and makes sure the resulting page is drawn even if
// it is the one already on screen.
func (a *App) navigate(path string) gate.Event {
	ev := a.watcher.Navigate(path)
	a.mu.Lock()
	a.repaint = true
	a.mu.Unlock()
	return ev
}

// settle draws the current page if it changed since the last command.
func (a *App) settle() {
	a.mu.Lock()
	ev := a.event
	draw := a.repaint || ev.Path != a.shown
	a.repaint = false
	a.shown = ev.Path
	a.mu.Unlock()

	if draw && ev.Path != "" {
		a.render(ev)
	}
}

func (a *App) takeReturnTo() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.returnTo
	a.returnTo = ""
	return r
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
