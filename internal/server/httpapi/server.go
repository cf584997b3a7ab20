// Package httpapi exposes the authentication service over HTTP. Routing and
// JSON marshaling live here; all semantics belong to the users service.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dev-th/authkeeper/internal/logging"
	"github.com/dev-th/authkeeper/internal/server/auth"
	"github.com/dev-th/authkeeper/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

// UserService is the narrow contract the transport depends on.
type UserService interface {
	SignUp(ctx context.Context, username string, password string) (*users.User, string, error)
	SignIn(ctx context.Context, username string, password string) (string, error)
	List(ctx context.Context) ([]*users.User, error)
	FindByID(ctx context.Context, id string) (*users.User, error)
	UpdatePassword(ctx context.Context, id string, username string, password string) error
	Delete(ctx context.Context, id string) error
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserService
	codec   auth.TokenCodec
}

func NewServer(address string, l logging.Logger, us UserService, codec auth.TokenCodec) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		codec:   codec,
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signin", s.signIn)
	mux.HandleFunc("POST /api/user", s.signUp)
	mux.HandleFunc("GET /api/user", s.withAuth(s.listUsers))
	mux.HandleFunc("GET /api/user/{id}", s.withAuth(s.findUser))
	mux.HandleFunc("PUT /api/user/{id}", s.withAuth(s.updateUser))
	mux.HandleFunc("DELETE /api/user/{id}", s.withAuth(s.deleteUser))
	mux.HandleFunc("GET /ping", s.ping)

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.routes()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
