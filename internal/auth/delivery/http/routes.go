package http

import (
	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/middleware"
)

const RegisterPath = "/register"

// RegisterRoutes maps the public pages. Login and register are for guests only.
func RegisterRoutes(r gin.IRouter, h Handler, mw middleware.Middleware) {
	r.GET(guard.PublicHome, h.Home)
	r.POST("/logout", h.Logout)

	guest := r.Group("", mw.GuestOnly())
	{
		guest.GET(guard.LoginPath, h.LoginPage)
		guest.POST(guard.LoginPath, mw.LoginRateLimit(guard.LoginPath), h.Login)
		guest.GET(RegisterPath, h.RegisterPage)
		guest.POST(RegisterPath, h.Register)
	}
}
