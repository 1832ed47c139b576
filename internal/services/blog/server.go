package blog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/penwright/blog/internal/platform/timeouts"
	"github.com/penwright/blog/internal/services/blog/app"
	"github.com/penwright/blog/internal/services/blog/modules"
	"github.com/penwright/blog/internal/services/blog/modules/admin"
	"github.com/penwright/blog/internal/services/blog/platform/httpx"
	"github.com/penwright/blog/internal/services/blog/platform/modulehandler"
	"github.com/penwright/blog/internal/services/blog/platform/observability"
	"github.com/penwright/blog/internal/services/blog/platform/requestmeta"
	"github.com/penwright/blog/internal/services/blog/postview"
	"github.com/penwright/blog/internal/services/blog/routepath"
	"github.com/penwright/blog/internal/services/blog/static"
)

// Pinger probes the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config defines the inputs for the blog HTTP server.
type Config struct {
	HTTPAddr string
	// Posts is the post store. Nil serves every post page in degraded mode.
	Posts    admin.PostStore
	Renderer postview.Renderer
	// Health backs /healthz. Nil reports healthy.
	Health Pinger
	// Logger receives request and failure logs. Nil uses the standard logger.
	Logger              *log.Logger
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Server hosts the blog HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *log.Logger
}

// NewHandler builds the complete blog handler: modules, static assets,
// health check and the shared middleware chain.
func NewHandler(config Config) (http.Handler, error) {
	if config.Renderer == nil {
		return nil, errors.New("markdown renderer is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	deps := modules.Dependencies{
		Posts:    config.Posts,
		Renderer: config.Renderer,
		Base:     modulehandler.NewBase(logger),
	}
	composed, err := app.Compose(app.ComposeInput{
		PublicModules:       modules.DefaultPublicModules(deps),
		AdminModules:        modules.DefaultAdminModules(deps),
		RequestSchemePolicy: config.RequestSchemePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	root := http.NewServeMux()
	root.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))
	root.HandleFunc(http.MethodGet+" "+routepath.Health, healthHandler(config.Health, logger))
	root.Handle(routepath.Root, composed)

	handler := httpx.Chain(root,
		httpx.RequestID(),
		observability.RequestLogger(logger),
		httpx.RecoverPanic(logger),
	)
	return otelhttp.NewHandler(gzhttp.GzipHandler(handler), "blog.http"), nil
}

func healthHandler(pinger Pinger, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeouts.StorePing)
			err := pinger.Ping(ctx)
			cancel()
			if err != nil {
				logger.Printf("health check failed: %v", err)
				_ = httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// NewServer builds a configured blog server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		logger: logger,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("blog server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Printf("blog listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
