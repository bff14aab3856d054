package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"retail-admin-web/pkg/response"
)

// RegisterRoutes maps the validation API under rg. A panic in a handler
// answers the JSON 500 body instead of an empty page error.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	api := rg.Group("", gin.CustomRecovery(func(c *gin.Context, rec any) {
		response.InternalError(c, fmt.Errorf("validation: %v", rec))
	}))
	api.POST("/forms/:form/validate", h.Validate)
}
