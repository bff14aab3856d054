package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ginKey     = "session"
	managerKey = "session.manager"
)

// ErrNoManager is returned by Renew when no Manager attached a session to the request.
var ErrNoManager = errors.New("session: no manager attached")

// Manager binds browsers to sessions through a cookie holding a random id.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

// ManagerConfig configures the session cookie.
type ManagerConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// NewManager creates a Manager backed by store.
func NewManager(store Store, cfg ManagerConfig) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = "sid"
	}
	return &Manager{store: store, cookieName: name, ttl: cfg.TTL, secure: cfg.Secure}
}

// Attach loads (or starts) the session of the current request and stores it in c.
// A presented id the store holds nothing for is replaced by a fresh one.
func (m *Manager) Attach(c *gin.Context) *Session {
	ctx := c.Request.Context()
	sid, err := c.Cookie(m.cookieName)
	if err != nil || uuid.Validate(sid) != nil || !m.known(ctx, sid) {
		sid = uuid.NewString()
	}
	return m.bind(c, sid)
}

// Renew moves the current session to a freshly issued id and drops the old
// one. Call it before storing credentials so an id chosen by the client never
// becomes authenticated.
func (m *Manager) Renew(c *gin.Context) (*Session, error) {
	ctx := c.Request.Context()
	sid := uuid.NewString()

	if old := FromContext(c); old != nil {
		for _, key := range []string{KeyToken, KeyProfile} {
			v, ok, err := m.store.Get(ctx, old.id, key)
			if err != nil {
				return nil, fmt.Errorf("session.Renew get %s: %w", key, err)
			}
			if !ok {
				continue
			}
			if err := m.store.Set(ctx, sid, key, v); err != nil {
				return nil, fmt.Errorf("session.Renew set %s: %w", key, err)
			}
		}
		if err := m.store.Delete(ctx, old.id, KeyToken, KeyProfile); err != nil {
			return nil, fmt.Errorf("session.Renew delete: %w", err)
		}
	}
	return m.bind(c, sid), nil
}

// known reports whether the store holds anything for sid. A store error keeps
// the id so the guard can defer instead of logging the browser out.
func (m *Manager) known(ctx context.Context, sid string) bool {
	for _, key := range []string{KeyToken, KeyProfile} {
		_, ok, err := m.store.Get(ctx, sid, key)
		if err != nil || ok {
			return true
		}
	}
	return false
}

func (m *Manager) bind(c *gin.Context, sid string) *Session {
	// always re-issue so the cookie lifetime slides with activity
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, sid, int(m.ttl.Seconds()), "/", "", m.secure, true)

	s := New(c.Request.Context(), sid, m.store)
	c.Set(ginKey, s)
	c.Set(managerKey, m)
	return s
}

// Renew rotates the session of c through the Manager that attached it.
func Renew(c *gin.Context) (*Session, error) {
	v, ok := c.Get(managerKey)
	if !ok {
		return nil, ErrNoManager
	}
	m, ok := v.(*Manager)
	if !ok {
		return nil, ErrNoManager
	}
	return m.Renew(c)
}

// FromContext returns the session attached by Attach, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(ginKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
