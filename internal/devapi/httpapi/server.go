// Package httpapi exposes the development backend over HTTP with gin. Routes
// and payloads follow what the CameYa client expects from the real backend.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/auth"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/jobs"
	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/users"
	"github.com/VinkoRobi2/CameYa-sub001/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.User, string, error)
	Login(ctx context.Context, email, password string) (string, *users.User, error)
	Verify(ctx context.Context, token string) (*users.User, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	CompleteStudent(ctx context.Context, userID int64, p users.StudentProfile) (*users.User, error)
	CompleteEmployer(ctx context.Context, userID int64, p users.EmployerProfile) (*users.User, error)
}

type JobService interface {
	List(ctx context.Context, page, limit int) (jobs.Page, error)
}

type PhotoSource interface {
	Get(name string) (users.Photo, bool)
}

type Server struct {
	address string
	users   UserService
	jobs    JobService
	photos  PhotoSource
	signer  *auth.Signer
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(a string, l logging.Logger, us UserService, js JobService, ps PhotoSource, signer *auth.Signer) *Server {
	s := &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		jobs:    js,
		photos:  ps,
		signer:  signer,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger))

	r.GET("/health", s.health)
	r.POST("/login", s.login)
	r.POST("/register", s.register)
	r.GET("/verify", s.verify)
	r.POST("/verify", s.verify)
	r.GET("/verify/:token", s.verify)
	r.POST("/auth/resend-verification", s.resendVerification)
	r.GET(users.PhotoPath+":name", s.photo)

	protected := r.Group("/protected", requireAuth(s.signer))
	{
		protected.PATCH("/completar-perfil", s.completeStudent)
		protected.PATCH("/completar-perfil-empleador", s.completeEmployer)
		protected.GET("/todos_trabajos", s.listJobs)
	}

	return r
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "Shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
