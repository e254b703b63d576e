package apiserver

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/genisson-ifba/enem-backend-integrated/config"
	"github.com/gorilla/handlers"
	"github.com/pkg/errors"
)

var Log = config.Cfg().GetLogger()

// Server hosts the HTTP API.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, api *API) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.ListenAddress(),
			Handler:           Handler(cfg, api),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Handler wraps the API router with CORS and access logging.
func Handler(cfg *config.Config, api *API) http.Handler {
	return CorsHandler(cfg)(handlers.CombinedLoggingHandler(os.Stdout, api.Router()))
}

func CorsHandler(cfg *config.Config) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowCredentials(),
		handlers.AllowedHeaders([]string{"content-type", "x-request-id", "access-control-request-headers", "access-control-request-method"}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
		handlers.AllowedOriginValidator(originValidator(cfg)),
	)
}

func originValidator(cfg *config.Config) handlers.OriginValidator {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = true
	}
	vercel := cfg.IsProductionMode() && cfg.AllowVercelPreviews
	return func(origin string) bool {
		if allowed[origin] {
			return true
		}
		return vercel && strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, ".vercel.app")
	}
}

// Start begins serving in a background goroutine. Serve errors other than
// a graceful close are sent on the returned channel.
func (s *Server) Start() <-chan error {
	errc := make(chan error, 1)
	go func() {
		Log.Infof("Starting HTTP server on %s", s.http.Addr)
		err := s.http.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
		Log.Info("Stopped HTTP server")
	}()
	return errc
}

// Stop gracefully shuts down the server, waiting up to the shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}
