package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	adminHTTP "retail-admin-web/internal/admin/delivery/http"
	authHTTP "retail-admin-web/internal/auth/delivery/http"
	"retail-admin-web/internal/model"
	shopHTTP "retail-admin-web/internal/shop/delivery/http"
	validationHTTP "retail-admin-web/internal/validation/delivery/http"
	"retail-admin-web/web"
)

const msgPageNotFound = "Página no encontrada"

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	srv.gin.NoRoute(func(c *gin.Context) {
		web.Fail(c, http.StatusNotFound, msgPageNotFound)
	})
	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID(), srv.mw.Access())
	srv.gin.SetHTMLTemplate(srv.templates)

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Running in production mode")
	} else {
		srv.l.Infof(ctx, "Running in %s mode", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	if srv.metrics != nil && srv.metricsPath != "" {
		srv.gin.GET(srv.metricsPath, gin.WrapH(srv.metrics.Handler()))
	}
}

// registerDomainRoutes registers the pages behind the session middleware and the JSON API.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	if srv.validationHandler != nil {
		validationHTTP.RegisterRoutes(srv.gin.Group("/api"), srv.validationHandler)
		srv.l.Infof(ctx, "Validation API registered at POST /api/forms/:form/validate")
	}

	pages := srv.gin.Group("", srv.mw.Session())
	authHTTP.RegisterRoutes(pages, srv.authHandler, srv.mw)
	adminHTTP.RegisterRoutes(pages, srv.adminHandler, srv.mw)
	shopHTTP.RegisterRoutes(pages, srv.shopHandler, srv.mw)
	srv.l.Infof(ctx, "Pages registered")

	return nil
}
