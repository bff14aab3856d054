package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"retail-admin-web/pkg/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags the request context with an id so every log line of the
// request carries it.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Access logs and measures every served request.
func (m Middleware) Access() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		elapsed := time.Since(begin)
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.metrics.ObserveRequest(c.Request.Method, route, status, elapsed)

		ctx := c.Request.Context()
		switch {
		case status >= 500:
			m.l.Errorf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		case len(c.Errors) > 0:
			m.l.Warnf(ctx, "%s %s %d %s: %s", c.Request.Method, c.Request.URL.Path, status, elapsed, c.Errors.String())
		default:
			m.l.Debugf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
