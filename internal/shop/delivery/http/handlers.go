package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/listing"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
	"retail-admin-web/internal/table"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/web"
)

const (
	MsgPurchased     = "Compra realizada con éxito"
	MsgOutOfStock    = "Producto agotado"
	MsgNotFound      = "El producto ya no está disponible"
	MsgInvalidAmount = "La cantidad debe ser mayor a 0"
)

func (h *handler) Dashboard(c *gin.Context) {
	web.Render(c, http.StatusOK, "user_dashboard.html", web.Page{Title: "Dashboard"})
}

func (h *handler) catalogActions(req *listing.Request[model.Product]) []table.Action[model.Product] {
	return []table.Action[model.Product]{{
		Name:  "buy",
		Label: "Comprar",
		Href: func(p model.Product) string {
			return req.Href(fmt.Sprintf("%s/buy/%d", CatalogPath, p.ID))
		},
	}}
}

// BuyForm opens the purchase form of one product.
func (h *handler) BuyForm(c *gin.Context) {
	req, tbl, p, ok := h.product(c)
	if !ok {
		return
	}
	f, err := catalog.PurchaseForm(p)
	if err != nil {
		web.Fail(c, http.StatusInternalServerError, httpreq.MsgUnexpected)
		return
	}
	st, _ := f.Update(form.State{}, form.Opened{})
	h.catalog.RenderForm(c, req, tbl, http.StatusOK, f, st, req.Href(c.Request.URL.Path))
}

// Buy validates the quantity and places the purchase.
func (h *handler) Buy(c *gin.Context) {
	ctx := c.Request.Context()
	req, tbl, p, ok := h.product(c)
	if !ok {
		return
	}
	f, err := catalog.PurchaseForm(p)
	if err != nil {
		web.Fail(c, http.StatusInternalServerError, httpreq.MsgUnexpected)
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		web.Fail(c, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	st := f.Restore(nil, f.Decode(c.Request.PostForm))

	st, _, err = h.submitter.Run(ctx, f, st, form.Submission{
		OnSubmit: func(ctx context.Context, vs form.Values) error {
			return h.repo.Purchase(ctx, req.Session, catalog.PurchaseInput(p, vs))
		},
	})
	if httpreq.IsUnauthorized(err) {
		web.Back(c, guard.LoginPath, session.FlashError, httpreq.MsgUnauthorized)
		return
	}
	if err != nil {
		h.l.Warnf(ctx, "shop.http.Buy: %v", err)
		st.Banner = h.mapError(err)
	}
	if err != nil || !st.Valid() {
		h.catalog.RenderForm(c, req, tbl, http.StatusUnprocessableEntity, f, st, req.Href(c.Request.URL.Path))
		return
	}

	web.Back(c, req.Href(CatalogPath), session.FlashSuccess, MsgPurchased)
}

// product loads the catalog page and the product of the :id parameter.
func (h *handler) product(c *gin.Context) (*listing.Request[model.Product], *table.Table[model.Product], model.Product, bool) {
	req, tbl, ok := h.catalog.Load(c)
	if !ok {
		return nil, nil, model.Product{}, false
	}
	p, ok := h.catalog.Row(req)
	if !ok {
		web.Back(c, req.Href(CatalogPath), session.FlashError, MsgNotFound)
		return nil, nil, model.Product{}, false
	}
	if p.Cantidad <= 0 {
		web.Back(c, req.Href(CatalogPath), session.FlashError, MsgOutOfStock)
		return nil, nil, model.Product{}, false
	}
	return req, tbl, p, true
}

func (h *handler) mapError(err error) string {
	switch {
	case errors.Is(err, backend.ErrInvalidQuantity):
		return MsgInvalidAmount
	default:
		return httpreq.Message(err)
	}
}
