package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/auth"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
	"retail-admin-web/web"
)

func (h *handler) Home(c *gin.Context) {
	p := web.Page{Title: "Inicio"}
	if s := session.FromContext(c); s != nil {
		if snap, err := s.Load(c.Request.Context()); err == nil && snap.Authenticated(s.Now()) {
			p.Profile = snap.Profile
		}
	}
	web.Render(c, http.StatusOK, "home.html", p)
}

func (h *handler) LoginPage(c *gin.Context) {
	f := catalog.LoginForm()
	st, _ := f.Update(form.State{}, form.Opened{})
	h.renderForm(c, http.StatusOK, "login.html", f, st, guard.LoginPath)
}

func (h *handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	f := catalog.LoginForm()
	if err := c.Request.ParseForm(); err != nil {
		web.Fail(c, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	st := f.Restore(nil, f.Decode(c.Request.PostForm))

	var profile model.Profile
	st, _, err := h.submitter.Run(ctx, f, st, form.Submission{
		OnSubmit: func(ctx context.Context, vs form.Values) error {
			// credentials are only ever stored under a freshly issued id
			sess, err := session.Renew(c)
			if err != nil {
				return fmt.Errorf("%w: %v", auth.ErrSession, err)
			}
			profile, err = h.uc.Login(ctx, sess, catalog.LoginInput(vs))
			return err
		},
	})
	if err != nil {
		h.l.Warnf(ctx, "auth.http.Login: %v", err)
		st.Banner = h.mapError(err)
	}
	if err != nil || !st.Valid() {
		h.renderForm(c, http.StatusUnprocessableEntity, "login.html", f, st, guard.LoginPath)
		return
	}

	c.Redirect(http.StatusSeeOther, guard.HomeFor(profile.Role()))
}

func (h *handler) RegisterPage(c *gin.Context) {
	f := catalog.RegisterForm()
	st, _ := f.Update(form.State{}, form.Opened{})
	h.renderForm(c, http.StatusOK, "register.html", f, st, RegisterPath)
}

func (h *handler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	f := catalog.RegisterForm()
	if err := c.Request.ParseForm(); err != nil {
		web.Fail(c, http.StatusBadRequest, "Solicitud inválida")
		return
	}
	st := f.Restore(nil, f.Decode(c.Request.PostForm))

	st, _, err := h.submitter.Run(ctx, f, st, form.Submission{
		OnSubmit: func(ctx context.Context, vs form.Values) error {
			return h.uc.Register(ctx, catalog.RegisterInput(vs))
		},
	})
	if err != nil {
		st.Banner = h.mapError(err)
	}
	if err != nil || !st.Valid() {
		h.renderForm(c, http.StatusUnprocessableEntity, "register.html", f, st, RegisterPath)
		return
	}

	web.Back(c, guard.LoginPath, session.FlashSuccess, MsgRegistered)
}

func (h *handler) Logout(c *gin.Context) {
	if sess := session.FromContext(c); sess != nil {
		if err := h.uc.Logout(c.Request.Context(), sess); err != nil {
			web.Back(c, guard.PublicHome, session.FlashError, MsgSession)
			return
		}
	}
	c.Redirect(http.StatusSeeOther, guard.PublicHome)
}

func (h *handler) renderForm(c *gin.Context, status int, page string, f *form.Form, st form.State, action string) {
	v := f.View(st, action, "")
	web.Render(c, status, page, web.Page{Title: f.Schema().Title, Data: v})
}
