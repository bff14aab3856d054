package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
)

func TestMenu(t *testing.T) {
	got := Menu(model.RoleUser, "/user/catalog")
	want := []NavLink{
		{Label: "Dashboard", Href: "/user/dashboard"},
		{Label: "Catálogo", Href: "/user/catalog", Active: true},
		{Label: "Mis Compras", Href: "/user/purchases"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("menu mismatch (-want +got):\n%s", diff)
	}
	if got := Menu("", "/"); len(got) != 0 {
		t.Errorf("expected no menu without a role, got %v", got)
	}
}

func TestMonth(t *testing.T) {
	if month(0) != "Ene" || month(11) != "Dic" || month(12) != "" || month(-1) != "" {
		t.Error("unexpected month labels")
	}
}

func TestFlashIsShownOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.POST("/go", func(c *gin.Context) { Back(c, "/", session.FlashSuccess, "Listo") })
	r.GET("/", func(c *gin.Context) { Render(c, http.StatusOK, "home.html", Page{Title: "Inicio"}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/go", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("unexpected response %d %q", w.Code, w.Header().Get("Location"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), `flash-success`) || !strings.Contains(w.Body.String(), "Listo") {
		t.Errorf("expected the flash on the next page")
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		cleared = cleared || (c.Name == "flash" && c.MaxAge < 0)
	}
	if !cleared {
		t.Errorf("expected the flash cookie to be cleared")
	}
}

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates: %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/x", func(c *gin.Context) { Fail(c, http.StatusBadGateway, "Error del servidor") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), "Error del servidor") {
		t.Errorf("unexpected response %d", w.Code)
	}
}
