package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/cellcount-go/internal/log"
	"github.com/ukaji3/cellcount-go/internal/session"
	"github.com/ukaji3/cellcount-go/internal/validate"
	"go.uber.org/zap"
)

const gracefulShutdownTimeout = 5 * time.Second

/*
Server serves the calculator over HTTP:
- POST /api/v1/calculations runs a calculation
- GET /api/v1/calculations/last returns the last successful calculation
- GET /api/v1/calculations/last/export downloads it as csv, xlsx or json
- DELETE /api/v1/calculations/cache forgets cached results
*/
type Server struct {
	logger    *zap.Logger
	cache     *session.Cache
	validator *validate.Validator
	listener  net.Listener
	now       func() time.Time
}

func New(logger *zap.Logger, cache *session.Cache, listener net.Listener) *Server {
	return &Server{
		logger:    logger,
		cache:     cache,
		validator: validate.NewValidator(),
		listener:  listener,
		now:       time.Now,
	}
}

// Router builds the chi router with every route registered.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(log.Logger(s.logger, "http"))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Route("/api/v1/calculations", func(r chi.Router) {
		r.Post("/", s.createCalculation)
		r.Get("/last", s.getLast)
		r.Get("/last/export", s.exportLast)
		r.Delete("/cache", s.purgeCache)
	})

	return router
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
	}()

	s.logger.Info("listening", zap.String("address", s.listener.Addr().String()))
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
