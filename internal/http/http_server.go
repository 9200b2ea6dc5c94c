package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"gitlab.com/wizardhub.net/internal/config"
	"gitlab.com/wizardhub.net/internal/core/ports/primary"
	auth2 "gitlab.com/wizardhub.net/internal/core/services/auth"
	"gitlab.com/wizardhub.net/internal/core/services/directory"
	"gitlab.com/wizardhub.net/internal/core/services/discovery"
	"gitlab.com/wizardhub.net/internal/core/services/job"
	"gitlab.com/wizardhub.net/internal/handlers"
	"gitlab.com/wizardhub.net/internal/handlers/auth"
	"gitlab.com/wizardhub.net/internal/handlers/jobs"
	"gitlab.com/wizardhub.net/internal/handlers/response"
	"gitlab.com/wizardhub.net/internal/handlers/users"
	"gitlab.com/wizardhub.net/internal/handlers/wizards"
)

type ServiceProvider struct {
	directoryService directory.IDirectoryService
	discoveryService discovery.IDiscoveryService
	jobService       job.IJobService
	tokens           primary.JWTService

	ggAuth         auth2.IAuthService
	localAuth      auth2.IAuthService
	googleProvider auth.IdentityProvider
}

// NewServiceProvider wires the services behind the routes. ggAuth and
// googleProvider may be nil, which leaves the Google routes unregistered.
func NewServiceProvider(
	directoryService directory.IDirectoryService,
	discoveryService discovery.IDiscoveryService,
	jobService job.IJobService,
	tokens primary.JWTService,
	localAuth auth2.IAuthService,
	ggAuth auth2.IAuthService,
	googleProvider auth.IdentityProvider,
) *ServiceProvider {
	return &ServiceProvider{
		directoryService: directoryService,
		discoveryService: discoveryService,
		jobService:       jobService,
		tokens:           tokens,
		localAuth:        localAuth,
		ggAuth:           ggAuth,
		googleProvider:   googleProvider,
	}
}

type Server struct {
	handler         http.Handler
	srv             *http.Server
	Config          *config.HttpConfig
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(cfg *config.HttpConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Config:          cfg,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	sp := s.ServiceProvider
	if sp.directoryService == nil || sp.discoveryService == nil || sp.jobService == nil || sp.tokens == nil || sp.localAuth == nil {
		return fmt.Errorf("http server is missing a service")
	}

	r := mux.NewRouter()
	mw := handlers.New(sp.tokens, s.logger)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteSuccess(w, map[string]string{"status": "ok", "service": s.Config.ServiceName})
	}).Methods("GET")

	wizards.NewWizardHandler(sp.discoveryService, s.logger).RegisterRoutes(r)
	users.NewUserHandler(sp.directoryService, s.logger).RegisterRoutes(r, mw)
	jobs.NewJobHandler(sp.jobService, s.logger).RegisterRoutes(r, mw)
	auth.NewHandler(s.logger).RegisterRoutes(r, &auth.ServiceDependencies{
		GGAuthService:    sp.ggAuth,
		LocalAuthService: sp.localAuth,
		GoogleProvider:   sp.googleProvider,
	})

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   s.Config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
	return nil
}

// Handler is the routed, CORS-wrapped handler. Init must run first.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start(ctx context.Context) error {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.Config.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
