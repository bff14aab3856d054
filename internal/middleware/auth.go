package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
)

const profileKey = "profile"

// Session attaches the browser session to the request.
func (m Middleware) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.sessions.Attach(c)
		c.Next()
	}
}

// Auth admits authenticated sessions whose role is in roles; no roles admits any.
// A session that cannot be read yet answers 204 with no content.
func (m Middleware) Auth(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, snap := m.guardState(c)
		d := guard.Decide(st, roles)
		switch d.Outcome {
		case guard.Defer:
			c.AbortWithStatus(http.StatusNoContent)
		case guard.Redirect:
			c.Redirect(http.StatusFound, d.Location)
			c.Abort()
		default:
			c.Set(profileKey, *snap.Profile)
			c.Next()
		}
	}
}

// GuestOnly sends signed-in sessions to their home page.
func (m Middleware) GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, _ := m.guardState(c)
		if st.Ready && st.Authenticated {
			c.Redirect(http.StatusFound, guard.HomeFor(st.Role))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m Middleware) guardState(c *gin.Context) (guard.State, session.Snapshot) {
	s := session.FromContext(c)
	if s == nil {
		s = m.sessions.Attach(c)
	}
	snap, err := s.Load(c.Request.Context())
	if err != nil {
		m.l.Warnf(c.Request.Context(), "middleware.Auth load session: %v", err)
		return guard.State{}, snap
	}
	return guard.State{
		Ready:         true,
		Authenticated: snap.Authenticated(s.Now()) && snap.Profile != nil,
		Role:          snap.Role(),
	}, snap
}

// Profile returns the profile admitted by Auth.
func Profile(c *gin.Context) (model.Profile, bool) {
	v, ok := c.Get(profileKey)
	if !ok {
		return model.Profile{}, false
	}
	p, ok := v.(model.Profile)
	return p, ok
}
