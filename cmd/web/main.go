package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"retail-admin-web/config"
	_ "retail-admin-web/docs" // Swagger docs
	adminHTTP "retail-admin-web/internal/admin/delivery/http"
	authHTTP "retail-admin-web/internal/auth/delivery/http"
	authUC "retail-admin-web/internal/auth/usecase"
	"retail-admin-web/internal/backend/rest"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/httpserver"
	"retail-admin-web/internal/middleware"
	"retail-admin-web/internal/session"
	shopHTTP "retail-admin-web/internal/shop/delivery/http"
	validationHTTP "retail-admin-web/internal/validation/delivery/http"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
	"retail-admin-web/web"
)

// @title       Retail Admin Web
// @description Server-rendered retail administration front-end. JSON endpoints for health checks and form field validation.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		File: log.FileConfig{
			Path:       cfg.Logger.File.Path,
			MaxSizeMB:  cfg.Logger.File.MaxSizeMB,
			MaxBackups: cfg.Logger.File.MaxBackups,
			MaxAgeDays: cfg.Logger.File.MaxAgeDays,
			Compress:   cfg.Logger.File.Compress,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Retail Admin Web...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Backend URL: %s", cfg.Backend.BaseURL)

	// 3. Session store
	var (
		store session.Store
		ready func(context.Context) error
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf(ctx, "Redis not reachable at %s yet: %v", cfg.Session.Redis.Addr, err)
		}
		store = session.NewRedisStore(rdb, cfg.Session.TTL)
		ready = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		logger.Infof(ctx, "Sessions stored in Redis at %s", cfg.Session.Redis.Addr)
	default:
		store = session.NewMemoryStore(cfg.Session.MaxEntries, cfg.Session.TTL)
		logger.Info(ctx, "Sessions stored in memory")
	}
	sessions := session.NewManager(store, session.ManagerConfig{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	})

	// 4. Metrics
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New()
	}

	// 5. Backend client & shared components
	client := httpreq.NewClient(logger, httpreq.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Metrics: collector,
	})
	repo := rest.New(logger, client)

	policy := form.StopOnEndpointError
	if cfg.Form.ContinueOnEndpointError {
		policy = form.ContinueOnEndpointError
	}
	submitter := form.NewSubmitter(logger, client, policy)

	tableOpts := catalog.TableOptions{
		PageSizes:         cfg.Table.PageSizes,
		DefaultPageSize:   cfg.Table.DefaultPageSize,
		ExportMaxColWidth: cfg.Table.ExportMaxColWidth,
	}

	mw := middleware.New(logger, middleware.Config{
		Sessions:    sessions,
		Metrics:     collector,
		LoginPerMin: cfg.RateLimit.LoginPerMin,
	})

	templates, err := web.Templates()
	if err != nil {
		logger.Error(ctx, "Failed to parse templates: ", err)
		return
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Templates:   templates,
		Middleware:  mw,
		Metrics:     collector,
		MetricsPath: cfg.Metrics.Path,
		Ready:       ready,

		AuthHandler: authHTTP.New(logger, authUC.New(repo, logger), submitter),
		AdminHandler: adminHTTP.New(logger, adminHTTP.Config{
			Repo:      repo,
			Submitter: submitter,
			Metrics:   collector,
			Table:     tableOpts,
		}),
		ShopHandler: shopHTTP.New(logger, shopHTTP.Config{
			Repo:      repo,
			Submitter: submitter,
			Metrics:   collector,
			Table:     tableOpts,
		}),
		ValidationHandler: validationHTTP.New(logger, catalog.Lookup),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
