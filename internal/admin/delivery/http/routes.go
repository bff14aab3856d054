package http

import (
	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/middleware"
	"retail-admin-web/internal/model"
)

// RegisterRoutes maps the admin pages, all restricted to the ADMIN role.
func RegisterRoutes(r gin.IRouter, h Handler, mw middleware.Middleware) {
	admin := r.Group("/admin", mw.Auth(model.RoleAdmin))
	admin.GET("/dashboard", h.Dashboard)
	h.routes(admin)
}

func (h *handler) routes(admin *gin.RouterGroup) {
	h.products.routes(admin.Group("/products"))
	h.categories.routes(admin.Group("/categories"))
	h.users.routes(admin.Group("/users"))
}
