package http

import (
	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/auth"
	"retail-admin-web/internal/form"
	"retail-admin-web/pkg/log"
)

// Handler is the public interface for the auth pages.
type Handler interface {
	Home(c *gin.Context)
	LoginPage(c *gin.Context)
	Login(c *gin.Context)
	RegisterPage(c *gin.Context)
	Register(c *gin.Context)
	Logout(c *gin.Context)
}

type handler struct {
	l         log.Logger
	uc        auth.UseCase
	submitter *form.Submitter
}

// New creates a new HTTP handler for the auth pages.
func New(l log.Logger, uc auth.UseCase, submitter *form.Submitter) Handler {
	return &handler{
		l:         l,
		uc:        uc,
		submitter: submitter,
	}
}
