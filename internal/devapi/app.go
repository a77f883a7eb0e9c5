// Package devapi wires the CameYa development backend: an in-memory stand-in
// for the real API that the client can be pointed at locally.
package devapi

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/auth"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/config"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/httpapi"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/jobs"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/users"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	jobService  *jobs.Service
	photos      *users.PhotoStore
	signer      *auth.Signer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	signer := auth.NewSigner(c.SecretKey)
	photos := users.NewPhotoStore()
	us := users.NewService(users.NewMemoryRepository(), photos, signer, c, logger)

	jr := jobs.NewMemoryRepository()
	if err := jobs.Seed(ctx, jr, c.SeedJobs, time.Now()); err != nil {
		return nil, fmt.Errorf("seed jobs: %w", err)
	}
	logger.Info(ctx, "Seeded jobs", "count", c.SeedJobs)

	return &App{
		config:      c,
		logger:      logger,
		userService: us,
		jobService:  jobs.NewService(jr),
		photos:      photos,
		signer:      signer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) server() *httpapi.Server {
	return httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.jobService, app.photos, app.signer)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is canceled or the process is signaled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "Stopped")
}
