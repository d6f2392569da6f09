package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router *gin.Engine
	Logger logrus.FieldLogger

	server http.Server

	errorMutex sync.RWMutex
	error      error
}

// NewServer creates a new Server instance.
func NewServer(injector *do.Injector, name string, port int, mapper StatusMapper) (*Server, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	logger = logger.WithField("component", name)

	logger.Info("Creating new server...")
	defer logger.Info("Server created.")

	router := NewRouter(logger, mapper)

	return &Server{
		Router: router,
		Logger: logger,
		server: http.Server{
			Addr:              fmt.Sprintf("0.0.0.0:%d", port),
			Handler:           router,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}, nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) HealthCheck() error {
	s.Logger.Debug("Server health check.")

	s.errorMutex.RLock()
	defer s.errorMutex.RUnlock()

	return s.error
}

func (s *Server) Shutdown() error {
	s.Logger.Info("Server shutting down...")
	defer s.Logger.Info("Server shot down.")

	return s.server.Shutdown(context.Background()) //nolint:wrapcheck
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	s.Logger.Info("Starting server at: ", s.server.Addr)

	err := s.server.ListenAndServe()

	s.errorMutex.Lock()
	s.error = err
	s.errorMutex.Unlock()

	return err
}
