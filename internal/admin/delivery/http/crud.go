package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/listing"
	"retail-admin-web/internal/session"
	"retail-admin-web/internal/table"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/pkg/log"
	"retail-admin-web/web"
)

const (
	MsgCreated  = "Registro creado correctamente"
	MsgUpdated  = "Registro actualizado correctamente"
	MsgDeleted  = "Registro eliminado correctamente"
	MsgNotFound = "El registro ya no existe"
)

type depsFunc func(ctx context.Context, creds httpreq.Credentials) (catalog.Deps, error)

// crud serves the create, edit and delete flows of one resource over its table page.
type crud[R table.Row] struct {
	l         log.Logger
	res       catalog.Resource[R]
	ctl       *listing.Controller[R]
	submitter *form.Submitter
	repo      backend.Repository
	deps      depsFunc
}

func newCRUD[R table.Row](
	l log.Logger,
	cfg Config,
	res catalog.Resource[R],
	base string,
	list func(context.Context, httpreq.Credentials) ([]R, error),
	deps depsFunc,
) *crud[R] {
	h := &crud[R]{l: l, res: res, submitter: cfg.Submitter, repo: cfg.Repo, deps: deps}
	h.ctl = listing.New(l, cfg.Metrics, listing.Config[R]{
		Resource: res,
		Base:     base,
		Options:  cfg.Table,
		List:     list,
		Actions:  h.actions,
		NewLabel: res.NewTitle,
	})
	return h
}

func (h *crud[R]) routes(g *gin.RouterGroup) {
	h.ctl.Routes(g)
	g.GET("/new", h.NewForm)
	g.POST("/new", h.Create)
	g.GET("/edit/:id", h.EditForm)
	g.POST("/edit/:id", h.Update)
}

func (h *crud[R]) actions(req *listing.Request[R]) []table.Action[R] {
	return []table.Action[R]{
		{
			Name:  "edit",
			Label: "Editar",
			Href: func(r R) string {
				return req.Href(fmt.Sprintf("%s/edit/%d", h.ctl.Base(), h.res.ID(r)))
			},
		},
		{
			Name:       "delete",
			Label:      "Eliminar",
			Confirm:    &table.Confirm{},
			ConfirmFor: h.res.DeletePrompt,
			OnClick: func(ctx context.Context, r R) error {
				if err := h.repo.Delete(ctx, req.Session, h.res.Collection, h.res.ID(r)); err != nil {
					return err
				}
				req.Done = MsgDeleted
				return nil
			},
		},
	}
}

func (h *crud[R]) loadDeps(ctx context.Context, creds httpreq.Credentials) (catalog.Deps, error) {
	if h.deps == nil {
		return catalog.Deps{}, nil
	}
	return h.deps(ctx, creds)
}

// NewForm opens the create form, unless the resource reports it cannot be created yet.
func (h *crud[R]) NewForm(c *gin.Context) {
	req, tbl, ok := h.ctl.Load(c)
	if !ok {
		return
	}
	f, ok := h.form(c, req, false)
	if !ok {
		return
	}
	st, _ := f.Update(form.State{}, form.Opened{})
	h.ctl.RenderForm(c, req, tbl, http.StatusOK, f, st, req.Href(h.ctl.Base()+"/new"))
}

func (h *crud[R]) Create(c *gin.Context) {
	req, tbl, ok := h.ctl.Load(c)
	if !ok {
		return
	}
	f, ok := h.form(c, req, false)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		web.Fail(c, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	st := f.Restore(nil, f.Decode(c.Request.PostForm))
	h.save(c, req, tbl, f, st, nil, req.Href(h.ctl.Base()+"/new"))
}

func (h *crud[R]) EditForm(c *gin.Context) {
	req, tbl, ok := h.ctl.Load(c)
	if !ok {
		return
	}
	row, ok := h.ctl.Row(req)
	if !ok {
		web.Back(c, req.Href(h.ctl.Base()), session.FlashError, MsgNotFound)
		return
	}
	f, ok := h.form(c, req, true)
	if !ok {
		return
	}
	st, _ := f.Update(form.State{}, form.Opened{Defaults: h.res.Values(row)})
	h.ctl.RenderForm(c, req, tbl, http.StatusOK, f, st, req.Href(h.editPath(row)))
}

func (h *crud[R]) Update(c *gin.Context) {
	req, tbl, ok := h.ctl.Load(c)
	if !ok {
		return
	}
	row, ok := h.ctl.Row(req)
	if !ok {
		web.Back(c, req.Href(h.ctl.Base()), session.FlashError, MsgNotFound)
		return
	}
	f, ok := h.form(c, req, true)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		web.Fail(c, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	st := f.Restore(h.res.Values(row), f.Decode(c.Request.PostForm))
	id := h.res.ID(row)
	h.save(c, req, tbl, f, st, &id, req.Href(h.editPath(row)))
}

func (h *crud[R]) editPath(row R) string {
	return fmt.Sprintf("%s/edit/%d", h.ctl.Base(), h.res.ID(row))
}

// form builds the create or edit form with its reference data. On failure the
// response is already written.
func (h *crud[R]) form(c *gin.Context, req *listing.Request[R], editing bool) (*form.Form, bool) {
	ctx := c.Request.Context()
	deps, err := h.loadDeps(ctx, req.Session)
	if err != nil {
		h.l.Warnf(ctx, "admin.http.form %s deps: %v", h.res.Name, err)
		h.ctl.Fail(c, err)
		return nil, false
	}
	if !editing && h.res.Precheck != nil {
		if notice := h.res.Precheck(deps); notice != "" {
			web.Back(c, req.Href(h.ctl.Base()), session.FlashInfo, notice)
			return nil, false
		}
	}
	f, err := h.res.Form(deps, editing)
	if err != nil {
		h.l.Errorf(ctx, "admin.http.form %s: %v", h.res.Name, err)
		web.Fail(c, http.StatusInternalServerError, httpreq.MsgUnexpected)
		return nil, false
	}
	return f, true
}

// save submits st to the resource endpoint. Invalid values and endpoint
// failures re-render the open form.
func (h *crud[R]) save(c *gin.Context, req *listing.Request[R], tbl *table.Table[R], f *form.Form, st form.State, id *int64, action string) {
	ctx := c.Request.Context()
	endpoint, method := h.res.Target(id)

	st, out, err := h.submitter.Run(ctx, f, st, form.Submission{
		Endpoint:    endpoint,
		Method:      method,
		IncludeAuth: true,
		Credentials: req.Session,
		Body:        func(vs form.Values) any { return catalog.Payload(vs) },
	})
	if err != nil {
		h.l.Errorf(ctx, "admin.http.save %s: %v", h.res.Name, err)
	}
	if httpreq.IsUnauthorized(out.EndpointErr) {
		web.Back(c, guard.LoginPath, session.FlashError, httpreq.MsgUnauthorized)
		return
	}
	if !st.Valid() || out.EndpointErr != nil || err != nil {
		h.ctl.RenderForm(c, req, tbl, http.StatusUnprocessableEntity, f, st, action)
		return
	}

	msg := MsgCreated
	if id != nil {
		msg = MsgUpdated
	}
	web.Back(c, req.Href(h.ctl.Base()), session.FlashSuccess, msg)
}
