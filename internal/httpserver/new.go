package httpserver

import (
	"context"
	"errors"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	adminHTTP "retail-admin-web/internal/admin/delivery/http"
	authHTTP "retail-admin-web/internal/auth/delivery/http"
	"retail-admin-web/internal/middleware"
	shopHTTP "retail-admin-web/internal/shop/delivery/http"
	validationHTTP "retail-admin-web/internal/validation/delivery/http"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Rendering & cross-cutting
	templates   *template.Template
	mw          middleware.Middleware
	metrics     *metrics.Collector
	metricsPath string
	ready       func(ctx context.Context) error

	// Pages
	authHandler  authHTTP.Handler
	adminHandler adminHTTP.Handler
	shopHandler  shopHTTP.Handler

	// JSON API
	validationHandler validationHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	Templates  *template.Template
	Middleware middleware.Middleware

	// Metrics is exposed on MetricsPath when both are set.
	Metrics     *metrics.Collector
	MetricsPath string

	// Ready reports whether dependencies such as the session store answer.
	Ready func(ctx context.Context) error

	AuthHandler       authHTTP.Handler
	AdminHandler      adminHTTP.Handler
	ShopHandler       shopHTTP.Handler
	ValidationHandler validationHTTP.Handler
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:                 logger,
		gin:               gin.New(),
		port:              cfg.Port,
		mode:              cfg.Mode,
		environment:       cfg.Environment,
		shutdownTimeout:   cfg.ShutdownTimeout,
		templates:         cfg.Templates,
		mw:                cfg.Middleware,
		metrics:           cfg.Metrics,
		metricsPath:       cfg.MetricsPath,
		ready:             cfg.Ready,
		authHandler:       cfg.AuthHandler,
		adminHandler:      cfg.AdminHandler,
		shopHandler:       cfg.ShopHandler,
		validationHandler: cfg.ValidationHandler,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.templates == nil {
		return errors.New("templates are required")
	}
	if srv.authHandler == nil || srv.adminHandler == nil || srv.shopHandler == nil {
		return errors.New("page handlers are required")
	}
	return nil
}
