package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/middleware"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/metrics"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, session.ErrStoreUnavailable
}
func (brokenStore) Set(context.Context, string, string, string) error {
	return session.ErrStoreUnavailable
}
func (brokenStore) Delete(context.Context, string, ...string) error {
	return session.ErrStoreUnavailable
}

const cookie = "sid"

func newRouter(store session.Store, loginPerMin int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mgr := session.NewManager(store, session.ManagerConfig{CookieName: cookie, TTL: time.Hour})
	mw := middleware.New(log.NewNop(), middleware.Config{Sessions: mgr, Metrics: metrics.New(), LoginPerMin: loginPerMin})

	r := gin.New()
	r.Use(mw.RequestID(), mw.Access(), mw.Session())
	r.GET("/admin/dashboard", mw.Auth(model.RoleAdmin), func(c *gin.Context) {
		p, _ := middleware.Profile(c)
		c.String(http.StatusOK, "admin "+p.Username)
	})
	r.GET("/user/dashboard", mw.Auth(model.RoleUser), func(c *gin.Context) { c.String(http.StatusOK, "user") })
	r.GET("/login", mw.GuestOnly(), func(c *gin.Context) { c.String(http.StatusOK, "login") })
	r.POST("/login", mw.LoginRateLimit("/login"), func(c *gin.Context) { c.String(http.StatusOK, "attempt") })
	return r
}

func signIn(t *testing.T, store session.Store, sid string, role model.Role) {
	t.Helper()
	s := session.New(context.Background(), sid, store)
	p := model.Profile{ID: 1, Username: "ana", RoleNombre: string(role)}
	if err := s.Login(context.Background(), "opaque-token", p); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func get(r http.Handler, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: cookie, Value: sid})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	const sid = "5f0c6c1e-7d3a-4c1b-9a57-2f1f4b8e9d10"

	t.Run("Anonymous goes to login", func(t *testing.T) {
		r := newRouter(session.NewMemoryStore(10, time.Hour), 0)
		w := get(r, "/admin/dashboard", "")
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
			t.Errorf("unexpected response %d %q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("Allowed role renders", func(t *testing.T) {
		store := session.NewMemoryStore(10, time.Hour)
		signIn(t, store, sid, model.RoleAdmin)
		w := get(newRouter(store, 0), "/admin/dashboard", sid)
		if w.Code != http.StatusOK || w.Body.String() != "admin ana" {
			t.Errorf("unexpected response %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("Wrong role goes home", func(t *testing.T) {
		store := session.NewMemoryStore(10, time.Hour)
		signIn(t, store, sid, model.RoleUser)
		w := get(newRouter(store, 0), "/admin/dashboard", sid)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/user/dashboard" {
			t.Errorf("unexpected response %d %q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("Signed in skips login", func(t *testing.T) {
		store := session.NewMemoryStore(10, time.Hour)
		signIn(t, store, sid, model.RoleAdmin)
		w := get(newRouter(store, 0), "/login", sid)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/dashboard" {
			t.Errorf("unexpected response %d %q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("Unreadable session renders nothing", func(t *testing.T) {
		w := get(newRouter(brokenStore{}, 0), "/user/dashboard", sid)
		if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
			t.Errorf("unexpected response %d %q", w.Code, w.Body.String())
		}
	})
}

func TestRequestID(t *testing.T) {
	r := newRouter(session.NewMemoryStore(10, time.Hour), 0)
	w := get(r, "/login", "")
	if w.Header().Get(middleware.HeaderRequestID) == "" {
		t.Errorf("expected a request id header")
	}

	const id = "0b1d6c9e-3c1a-4a2b-8f00-111111111111"
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set(middleware.HeaderRequestID, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(middleware.HeaderRequestID); got != id {
		t.Errorf("expected request id to be kept, got %q", got)
	}
}

func TestLoginRateLimit(t *testing.T) {
	r := newRouter(session.NewMemoryStore(10, time.Hour), 2)
	var limited int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusSeeOther {
			limited++
		}
	}
	if limited == 0 {
		t.Errorf("expected attempts beyond the burst to be limited")
	}
}
