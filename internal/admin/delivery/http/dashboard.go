package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/session"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/web"
)

// Dashboard shows the backend totals and their monthly growth.
func (h *handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	data, err := h.repo.AdminDashboard(ctx, session.FromContext(c))
	if httpreq.IsUnauthorized(err) {
		web.Back(c, guard.LoginPath, session.FlashError, httpreq.MsgUnauthorized)
		return
	}

	d := web.Dashboard{Data: data}
	if err != nil {
		h.l.Warnf(ctx, "admin.http.Dashboard: %v", err)
		d.Error = httpreq.Message(err)
	}
	web.Render(c, http.StatusOK, "admin_dashboard.html", web.Page{Title: "Dashboard", Data: d})
}
