package http

import (
	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/form"
	"retail-admin-web/pkg/log"
)

// Handler is the public interface for the form validation API.
type Handler interface {
	Validate(c *gin.Context)
}

// Lookup resolves a form by name.
type Lookup func(name string) (*form.Form, bool)

type handler struct {
	l      log.Logger
	lookup Lookup
}

// New creates a new HTTP handler for the form validation API.
func New(l log.Logger, lookup Lookup) Handler {
	return &handler{
		l:      l,
		lookup: lookup,
	}
}
