package http

import (
	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/listing"
	"retail-admin-web/internal/model"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
)

const (
	CatalogPath   = "/user/catalog"
	PurchasesPath = "/user/purchases"
)

// Handler is the public interface for the user pages.
type Handler interface {
	Dashboard(c *gin.Context)
	BuyForm(c *gin.Context)
	Buy(c *gin.Context)
	routes(user *gin.RouterGroup)
}

type handler struct {
	l         log.Logger
	repo      backend.Repository
	submitter *form.Submitter

	catalog   *listing.Controller[model.Product]
	purchases *listing.Controller[model.Sale]
}

// Config is the dependency bag passed to New.
type Config struct {
	Repo      backend.Repository
	Submitter *form.Submitter
	Metrics   *metrics.Collector
	Table     catalog.TableOptions
}

// New creates a new HTTP handler for the user pages.
func New(l log.Logger, cfg Config) Handler {
	h := &handler{l: l, repo: cfg.Repo, submitter: cfg.Submitter}
	h.catalog = listing.New(l, cfg.Metrics, listing.Config[model.Product]{
		Resource: catalog.ShopCatalog,
		Base:     CatalogPath,
		Options:  cfg.Table,
		List:     cfg.Repo.ListProducts,
		Actions:  h.catalogActions,
	})
	h.purchases = listing.New(l, cfg.Metrics, listing.Config[model.Sale]{
		Resource: catalog.Purchases,
		Base:     PurchasesPath,
		Options:  cfg.Table,
		List:     cfg.Repo.MyPurchases,
	})
	return h
}
