package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/model"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
)

const (
	ProductsPath   = "/admin/products"
	CategoriesPath = "/admin/categories"
	UsersPath      = "/admin/users"
)

// Handler is the public interface for the admin pages.
type Handler interface {
	Dashboard(c *gin.Context)
	routes(admin *gin.RouterGroup)
}

type handler struct {
	l    log.Logger
	repo backend.Repository

	products   *crud[model.Product]
	categories *crud[model.Category]
	users      *crud[model.User]
}

// Config is the dependency bag passed to New.
type Config struct {
	Repo      backend.Repository
	Submitter *form.Submitter
	Metrics   *metrics.Collector
	Table     catalog.TableOptions
}

// New creates a new HTTP handler for the admin pages.
func New(l log.Logger, cfg Config) Handler {
	repo := cfg.Repo
	categoryDeps := func(ctx context.Context, creds httpreq.Credentials) (catalog.Deps, error) {
		cats, err := repo.ListCategories(ctx, creds)
		return catalog.Deps{Categories: cats}, err
	}
	return &handler{
		l:          l,
		repo:       repo,
		products:   newCRUD(l, cfg, catalog.Products, ProductsPath, repo.ListProducts, categoryDeps),
		categories: newCRUD(l, cfg, catalog.Categories, CategoriesPath, repo.ListCategories, nil),
		users:      newCRUD(l, cfg, catalog.Users, UsersPath, repo.ListUsers, nil),
	}
}
