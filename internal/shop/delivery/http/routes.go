package http

import (
	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/middleware"
	"retail-admin-web/internal/model"
)

// RegisterRoutes maps the user pages, all restricted to the USER role.
func RegisterRoutes(r gin.IRouter, h Handler, mw middleware.Middleware) {
	user := r.Group("/user", mw.Auth(model.RoleUser))
	user.GET("/dashboard", h.Dashboard)
	h.routes(user)
}

func (h *handler) routes(user *gin.RouterGroup) {
	cat := user.Group("/catalog")
	h.catalog.Routes(cat)
	cat.GET("/buy/:id", h.BuyForm)
	cat.POST("/buy/:id", h.Buy)

	h.purchases.Routes(user.Group("/purchases"))
}
