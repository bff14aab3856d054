// Package listing serves a table page: the listing itself, spreadsheet export,
// row actions with their confirmation step, and the form modal drawn over it.
package listing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/session"
	"retail-admin-web/internal/table"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
	"retail-admin-web/web"
)

const (
	MsgNothingToExport = "No hay datos para exportar"
	MsgExportFailed    = "No se pudo generar el archivo de exportación"
	MsgExportDisabled  = "Esta tabla no se puede exportar"
)

// Request is one request against a table page, with the rows already loaded.
type Request[R table.Row] struct {
	C       *gin.Context
	Session *session.Session
	Rows    []R
	State   table.State
	// Done is the success notice an action handler leaves for the next page.
	Done string
}

// Href returns path with the current table state as its query.
func (r *Request[R]) Href(path string) string {
	s := r.State
	s.Pending = nil
	return table.Href(path, s)
}

// Config declares a table page.
type Config[R table.Row] struct {
	Resource catalog.Resource[R]
	Base     string
	Options  catalog.TableOptions
	List     func(ctx context.Context, creds httpreq.Credentials) ([]R, error)
	// Actions builds the row actions of one request.
	Actions func(req *Request[R]) []table.Action[R]
	// NewLabel, when set, shows a create button linking to Base/new.
	NewLabel string
}

// Controller serves the page declared by a Config.
type Controller[R table.Row] struct {
	cfg     Config[R]
	l       log.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func New[R table.Row](l log.Logger, m *metrics.Collector, cfg Config[R]) *Controller[R] {
	return &Controller[R]{cfg: cfg, l: l, metrics: m, now: time.Now}
}

func (ctl *Controller[R]) Base() string { return ctl.cfg.Base }

func (ctl *Controller[R]) Resource() catalog.Resource[R] { return ctl.cfg.Resource }

// Load reads the rows and the table state of the request. On failure the
// response is already written and ok is false.
func (ctl *Controller[R]) Load(c *gin.Context) (req *Request[R], tbl *table.Table[R], ok bool) {
	ctx := c.Request.Context()
	sess := session.FromContext(c)

	rows, err := ctl.cfg.List(ctx, sess)
	if err != nil {
		ctl.l.Warnf(ctx, "listing.Load %s: %v", ctl.cfg.Base, err)
		ctl.Fail(c, err)
		return nil, nil, false
	}

	req = &Request[R]{C: c, Session: sess, Rows: rows}
	var actions []table.Action[R]
	if ctl.cfg.Actions != nil {
		actions = ctl.cfg.Actions(req)
	}
	tbl, err = ctl.cfg.Resource.Table(ctl.cfg.Options, actions...)
	if err != nil {
		ctl.l.Errorf(ctx, "listing.Load %s table: %v", ctl.cfg.Base, err)
		web.Fail(c, http.StatusInternalServerError, httpreq.MsgUnexpected)
		return nil, nil, false
	}

	q := c.Request.URL.Query()
	req.State = tbl.ParseState(q)
	for _, ev := range tbl.EventFromQuery(q) {
		req.State, _ = tbl.Update(rows, req.State, ev)
	}
	return req, tbl, true
}

// Fail answers a failed backend call. A rejected session goes back to login.
func (ctl *Controller[R]) Fail(c *gin.Context, err error) {
	if httpreq.IsUnauthorized(err) {
		web.Back(c, guard.LoginPath, session.FlashError, httpreq.MsgUnauthorized)
		return
	}
	web.Fail(c, http.StatusBadGateway, httpreq.Message(err))
}

// Render writes the page with the optional form modal open.
func (ctl *Controller[R]) Render(c *gin.Context, req *Request[R], tbl *table.Table[R], status int, fv *form.View) {
	data := web.Listing{
		Table: tbl.View(ctl.cfg.Base, req.Rows, req.State),
		Form:  fv,
	}
	if ctl.cfg.NewLabel != "" {
		data.NewHref = req.Href(ctl.cfg.Base + "/new")
		data.NewLabel = ctl.cfg.NewLabel
	}
	web.Render(c, status, "listing.html", web.Page{Title: ctl.cfg.Resource.Title, Data: data})
}

// List serves the page.
func (ctl *Controller[R]) List(c *gin.Context) {
	req, tbl, ok := ctl.Load(c)
	if !ok {
		return
	}
	ctl.Render(c, req, tbl, http.StatusOK, nil)
}

// Export downloads the filtered rows, or returns to the page with a notice.
func (ctl *Controller[R]) Export(c *gin.Context) {
	req, tbl, ok := ctl.Load(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	name := ctl.cfg.Resource.Name

	file, err := tbl.Export(req.Rows, req.State, ctl.now())
	switch {
	case errors.Is(err, table.ErrExportDisabled):
		web.Fail(c, http.StatusNotFound, MsgExportDisabled)
		return
	case errors.Is(err, table.ErrNothingToExport):
		ctl.metrics.ObserveExport(name, "empty")
		web.Back(c, req.Href(ctl.cfg.Base), session.FlashError, MsgNothingToExport)
		return
	case err != nil:
		ctl.metrics.ObserveExport(name, "error")
		ctl.l.Errorf(ctx, "listing.Export %s: %v", name, err)
		web.Back(c, req.Href(ctl.cfg.Base), session.FlashError, MsgExportFailed)
		return
	}

	ctl.metrics.ObserveExport(name, "ok")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, table.ExportContentType, file.Data)
}

// Action handles a row action click. Actions needing confirmation come back
// to the page with the prompt armed.
func (ctl *Controller[R]) Action(c *gin.Context) {
	req, tbl, ok := ctl.Load(c)
	if !ok {
		return
	}
	ev := table.ActionClicked{Action: c.Param("action"), RowKey: c.Param("key")}
	ctl.dispatch(c, req, tbl, ev)
}

// Confirm resolves an armed confirmation as accepted. Cancelling is a plain
// link back to the page.
func (ctl *Controller[R]) Confirm(c *gin.Context) {
	req, tbl, ok := ctl.Load(c)
	if !ok {
		return
	}
	ctl.dispatch(c, req, tbl, table.ConfirmResolved{Accepted: true})
}

func (ctl *Controller[R]) dispatch(c *gin.Context, req *Request[R], tbl *table.Table[R], ev table.Event) {
	ctx := c.Request.Context()
	next, err := tbl.Dispatch(ctx, req.Rows, req.State, ev)
	target := table.Href(ctl.cfg.Base, next)
	if err != nil {
		ctl.l.Warnf(ctx, "listing.dispatch %s: %v", ctl.cfg.Base, err)
		if httpreq.IsUnauthorized(err) {
			web.Back(c, guard.LoginPath, session.FlashError, httpreq.MsgUnauthorized)
			return
		}
		web.Back(c, target, session.FlashError, httpreq.Message(err))
		return
	}
	web.Back(c, target, session.FlashSuccess, req.Done)
}

// Routes maps the table endpoints under g.
func (ctl *Controller[R]) Routes(g gin.IRoutes) {
	g.GET("", ctl.List)
	g.GET("/export", ctl.Export)
	g.POST("/actions/:action/:key", ctl.Action)
	g.POST("/confirm", ctl.Confirm)
}

// RenderForm writes the page with f open in state st, posting to action.
func (ctl *Controller[R]) RenderForm(c *gin.Context, req *Request[R], tbl *table.Table[R], status int, f *form.Form, st form.State, action string) {
	v := f.View(st, action, req.Href(ctl.cfg.Base))
	ctl.Render(c, req, tbl, status, &v)
}

// Row finds the row whose id is the :id path parameter.
func (ctl *Controller[R]) Row(req *Request[R]) (R, bool) {
	var zero R
	id, ok := catalog.ParseID(req.C.Param("id"))
	if !ok {
		return zero, false
	}
	for _, r := range req.Rows {
		if ctl.cfg.Resource.ID(r) == id {
			return r, true
		}
	}
	return zero, false
}
