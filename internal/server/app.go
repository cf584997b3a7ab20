// Package server initializes and runs the authentication server. It wires
// configuration, storage, the credential primitives, and the HTTP endpoint,
// and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dev-th/authkeeper/internal/logging"
	"github.com/dev-th/authkeeper/internal/server/auth"
	"github.com/dev-th/authkeeper/internal/server/config"
	"github.com/dev-th/authkeeper/internal/server/httpapi"
	"github.com/dev-th/authkeeper/internal/server/shared/db"
	"github.com/dev-th/authkeeper/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	manager     db.RepositoryManager
	userService *users.Service
	codec       auth.TokenCodec
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	// the signing key has no safe default; refusing to start beats
	// issuing tokens signed with an empty key
	if c.SecretKey == "" {
		return nil, errors.New("signing key is not configured")
	}

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec := auth.NewJWTCodec([]byte(c.SecretKey), c.TokenValidityDuration)
	us := users.NewService(m.Users(), auth.NewBcryptHasher(auth.DefaultBcryptCost), codec)

	return &App{config: c, logger: logger, manager: m, userService: us, codec: codec}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.userService, app.codec)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.manager.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err.Error())
		cancelFunc()
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
