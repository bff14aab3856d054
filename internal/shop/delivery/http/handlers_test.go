package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/backend/backendtest"
	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/middleware"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
	shopHTTP "retail-admin-web/internal/shop/delivery/http"
	"retail-admin-web/pkg/log"
	"retail-admin-web/web"
)

const (
	cookieName = "sid"
	sid        = "0f9e8d7c-6b5a-4c3d-9e2f-1a0b9c8d7e6f"
)

func fixture() *backendtest.Fake {
	return &backendtest.Fake{
		Products: []model.Product{
			{ID: 1, Nombre: "Dolex", Precio: 14000, Cantidad: 3},
			{ID: 2, Nombre: "Advil", Precio: 9000, Cantidad: 0},
		},
		Sales: []model.Sale{
			{ID: 7, ProductoID: 1, ProductoNombre: "Dolex", Cantidad: 2, PrecioUnitario: 14000, PrecioTotal: 28000, FechaCompra: "2025-03-09T10:00:00"},
		},
	}
}

func newRouter(t *testing.T, repo *backendtest.Fake) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("web.Templates: %v", err)
	}
	l := log.NewNop()
	store := session.NewMemoryStore(10, time.Hour)
	s := session.New(context.Background(), sid, store)
	if err := s.Login(context.Background(), "tok", model.Profile{ID: 2, Username: "ana", RoleNombre: string(model.RoleUser)}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	mgr := session.NewManager(store, session.ManagerConfig{CookieName: cookieName, TTL: time.Hour})
	mw := middleware.New(l, middleware.Config{Sessions: mgr})

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(mw.Session())
	h := shopHTTP.New(l, shopHTTP.Config{
		Repo:      repo,
		Submitter: form.NewSubmitter(l, nil, form.ContinueOnEndpointError),
		Table:     catalog.TableOptions{PageSizes: []int{5, 10, 20, 50}, DefaultPageSize: 10},
	})
	shopHTTP.RegisterRoutes(r, h, mw)
	return r
}

func do(r http.Handler, method, target string, values url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if values != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: cookieName, Value: sid})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalog(t *testing.T) {
	w := do(newRouter(t, fixture()), http.MethodGet, "/user/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Catálogo de Productos", "Dolex", "Comprar", "/user/catalog/buy/1", `<span class="badge badge-out">Agotado</span>`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestBuy(t *testing.T) {
	tcs := map[string]struct {
		target   string
		cantidad string
		wantCode int
		wantBody string
		wantBuys []backend.PurchaseInput
	}{
		"Success": {
			target:   "/user/catalog/buy/1",
			cantidad: "2",
			wantCode: http.StatusSeeOther,
			wantBuys: []backend.PurchaseInput{{ProductoID: 1, Cantidad: 2}},
		},
		"Above stock": {
			target:   "/user/catalog/buy/1",
			cantidad: "4",
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Cantidad debe ser &lt;= 3",
		},
		"Zero": {
			target:   "/user/catalog/buy/1",
			cantidad: "0",
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "Cantidad debe ser &gt;= 1",
		},
		"Fraction": {
			target:   "/user/catalog/buy/1",
			cantidad: "1.5",
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "La cantidad debe ser un número entero",
		},
		"Out of stock": {
			target:   "/user/catalog/buy/2",
			cantidad: "1",
			wantCode: http.StatusSeeOther,
		},
		"Unknown product": {
			target:   "/user/catalog/buy/99",
			cantidad: "1",
			wantCode: http.StatusSeeOther,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			repo := fixture()
			w := do(newRouter(t, repo), http.MethodPost, tc.target, url.Values{"cantidad": {tc.cantidad}})
			if w.Code != tc.wantCode {
				t.Fatalf("unexpected status %d", w.Code)
			}
			if tc.wantBody != "" && !strings.Contains(w.Body.String(), tc.wantBody) {
				t.Errorf("expected %q in body", tc.wantBody)
			}
			if len(repo.Purchased) != len(tc.wantBuys) {
				t.Fatalf("unexpected purchases %v", repo.Purchased)
			}
			for i := range tc.wantBuys {
				if repo.Purchased[i] != tc.wantBuys[i] {
					t.Errorf("purchase %d: got %+v want %+v", i, repo.Purchased[i], tc.wantBuys[i])
				}
			}
		})
	}
}

func TestBuyFormOpens(t *testing.T) {
	r := newRouter(t, fixture())
	w := do(r, http.MethodGet, "/user/catalog/buy/1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Comprar Dolex") {
		t.Fatalf("expected the purchase form, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/user/catalog/buy/2", nil)
	if w.Code != http.StatusSeeOther {
		t.Errorf("sold out product must not open the form, got %d", w.Code)
	}
}

func TestPurchases(t *testing.T) {
	r := newRouter(t, fixture())

	w := do(r, http.MethodGet, "/user/purchases", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "$ 28.000") {
		t.Fatalf("expected purchase rows, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/user/purchases/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected export status %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "mis-compras_") {
		t.Errorf("unexpected disposition %q", cd)
	}
}

func TestAdminIsSentHome(t *testing.T) {
	repo := fixture()
	gin.SetMode(gin.TestMode)
	l := log.NewNop()
	store := session.NewMemoryStore(10, time.Hour)
	s := session.New(context.Background(), sid, store)
	if err := s.Login(context.Background(), "tok", model.Profile{ID: 1, RoleNombre: string(model.RoleAdmin)}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	mgr := session.NewManager(store, session.ManagerConfig{CookieName: cookieName, TTL: time.Hour})
	mw := middleware.New(l, middleware.Config{Sessions: mgr})
	r := gin.New()
	r.Use(mw.Session())
	shopHTTP.RegisterRoutes(r, shopHTTP.New(l, shopHTTP.Config{Repo: repo}), mw)

	w := do(r, http.MethodGet, "/user/catalog", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/dashboard" {
		t.Errorf("unexpected response %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestCatalogHasNoExport(t *testing.T) {
	w := do(newRouter(t, fixture()), http.MethodGet, "/user/catalog/export", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unexpected status %d", w.Code)
	}
}
