// Package site hosts the Northline Rail marketing website.
package site

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/northlinerail/website/internal/platform/assets/imagecdn"
	"github.com/northlinerail/website/internal/platform/branding"
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/platform/timeouts"
	siteapp "github.com/northlinerail/website/internal/services/site/app"
	"github.com/northlinerail/website/internal/services/site/catalog"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/modules"
	"github.com/northlinerail/website/internal/services/site/modules/inquiries"
	"github.com/northlinerail/website/internal/services/site/modules/metadata"
	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	sitei18n "github.com/northlinerail/website/internal/services/site/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/platform/observability"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/platform/requestmeta"
	"github.com/northlinerail/website/internal/services/site/routepath"
	sitestatic "github.com/northlinerail/website/internal/services/site/static"
	"github.com/northlinerail/website/internal/services/site/storage"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const staticCacheControl = "public, max-age=86400"

// Config defines startup inputs for the site service.
type Config struct {
	HTTPAddr       string
	SEO            seo.Site
	Images         imagecdn.CDN
	Catalog        *catalog.Catalog
	Submitter      inquiries.Submitter
	Inquiries      storage.InquiryReader
	Admin          siteapp.Credentials
	Policy         requestmeta.SchemePolicy
	Logger         *zap.Logger
	TracerProvider trace.TracerProvider
	// Ready reports backing store health for /up.
	Ready func(context.Context) error
	Now   func() time.Time
}

// Server hosts the site HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	base := module.Base{
		Renderer: pagerender.Renderer{
			SiteName:   branding.AppName,
			LegalName:  branding.LegalName,
			Phone:      branding.PriorityPhone,
			ThemeColor: branding.ThemeColor,
			Now:        cfg.Now,
		},
		SEO:    cfg.SEO,
		Images: cfg.Images,
		Logger: logger,
		Now:    cfg.Now,
	}
	deps := modules.Dependencies{
		Base:    base,
		Catalog: cfg.Catalog,
		Identity: metadata.Identity{
			Name:            branding.AppName,
			ShortName:       "Northline",
			Description:     branding.Tagline,
			ThemeColor:      branding.ThemeColor,
			BackgroundColor: branding.BackgroundColor,
		},
		Static:    sitestatic.FS,
		Submitter: cfg.Submitter,
		Policy:    cfg.Policy,
		Inquiries: cfg.Inquiries,
	}
	input := siteapp.ComposeInput{
		PublicModules: modules.DefaultPublicModules(deps),
		Credentials:   cfg.Admin,
		Realm:         branding.AppName + " admin",
	}
	if cfg.Admin.Configured() && cfg.Inquiries != nil {
		input.ProtectedModules = modules.DefaultProtectedModules(deps)
	} else {
		logger.Info("admin routes disabled", zap.Bool("credentials", cfg.Admin.Configured()))
	}
	h, err := siteapp.Composer{}.Compose(input)
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, staticHandler())
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, healthHandler(cfg.Ready))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RequestID(),
		observability.Tracing(cfg.TracerProvider),
		observability.RequestLogger(logger),
		httpx.RecoverPanic(logger),
		httpx.SecurityHeaders(),
		sitei18n.Middleware(func(r *http.Request) bool { return requestmeta.IsHTTPS(r, cfg.Policy) }),
	), nil
}

func staticHandler() http.Handler {
	files := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(sitestatic.FS)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", staticCacheControl)
		files.ServeHTTP(w, r)
	})
}

func healthHandler(ready func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// NewServer validates config and constructs a site server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose site handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("site server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves HTTP traffic on listener until context cancellation.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("site listening", zap.String("addr", listener.Addr().String()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown site http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve site http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
