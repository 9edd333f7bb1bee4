// Package rest exposes the services over HTTP using echo.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/logging"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(refreshToken string) (string, error)
}

type RecordService interface {
	List(ctx context.Context) ([]*models.Record, error)
	Create(ctx context.Context, in services.RecordInput) (*models.Record, error)
	Get(ctx context.Context, id int64) (*models.Record, error)
	Delete(ctx context.Context, id int64) error
}

type NoteService interface {
	List(ctx context.Context) ([]*models.Note, error)
	Create(ctx context.Context, in services.NoteInput) (*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Update(ctx context.Context, id int64, in services.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

const shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address       string
	tokenLocation string
	cookieSecure  bool
	logger        logging.Logger
	issuer        *auth.Issuer
	users         UserService
	records       RecordService
	notes         NoteService
	echo          *echo.Echo
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, issuer *auth.Issuer, us UserService, rs RecordService, ns NoteService) *HTTPServer {
	s := &HTTPServer{
		address:       cfg.EndpointAddrHTTP,
		tokenLocation: cfg.TokenLocation,
		cookieSecure:  cfg.CookieSecure,
		logger:        l.With("module", "http_server"),
		issuer:        issuer,
		users:         us,
		records:       rs,
		notes:         ns,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	s.useMiddleware(e)
	s.registerRoutes(e)

	s.echo = e
	return s
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

func (s *HTTPServer) registerRoutes(e *echo.Echo) {
	access := s.requireToken(auth.TokenTypeAccess)
	refresh := s.requireToken(auth.TokenTypeRefresh)

	e.GET("/ping", s.ping)

	e.POST("/login", s.login)
	e.POST("/refresh", s.refresh, refresh)
	e.DELETE("/logout", s.logout, access)

	e.GET("/user", s.listUsers, access)
	e.POST("/user", s.createUser)
	e.GET("/user/get-current", s.currentUser, access)
	e.DELETE("/user/:id", s.deleteUser, access)

	e.GET("/records/", s.listRecords)
	e.POST("/records/", s.createRecord)
	e.GET("/records/:id/", s.getRecord)
	e.DELETE("/records/:id/", s.deleteRecord)

	e.GET("/notas", s.listNotes)
	e.POST("/notas", s.createNote, access)
	e.GET("/notas/:id", s.getNote)
	e.PUT("/notas/:id", s.updateNote, access)
	e.DELETE("/notas/:id", s.deleteNote, access)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.echo.Shutdown(shutdownCtx)
}

func (s *HTTPServer) ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}
