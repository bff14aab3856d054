package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/catalog"
	validationHTTP "retail-admin-web/internal/validation/delivery/http"
	"retail-admin-web/pkg/log"
	"retail-admin-web/pkg/response"
)

func TestValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	validationHTTP.RegisterRoutes(r.Group("/api"), validationHTTP.New(log.NewNop(), catalog.Lookup))

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		error  string
	}{
		{"negative price", "/api/forms/products/validate",
			`{"field":"precio","values":{"precio":-5}}`, http.StatusOK, "Precio debe ser >= 0"},
		{"valid price", "/api/forms/products/validate",
			`{"field":"precio","values":{"precio":14000}}`, http.StatusOK, ""},
		{"password mismatch", "/api/forms/registro/validate",
			`{"field":"confirmPassword","values":{"password":"secreto","confirmPassword":"otro123"}}`, http.StatusOK, "Las contraseñas no coinciden"},
		{"required", "/api/forms/login/validate",
			`{"field":"email","values":{}}`, http.StatusOK, "Correo electrónico es requerido"},
		{"unknown form", "/api/forms/nope/validate", `{"field":"x"}`, http.StatusNotFound, ""},
		{"unknown field", "/api/forms/login/validate", `{"field":"x"}`, http.StatusUnprocessableEntity, ""},
		{"bad body", "/api/forms/login/validate", `{`, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK {
				return
			}
			var resp struct {
				Data struct {
					Field string `json:"field"`
					Error string `json:"error"`
				} `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Data.Error != tc.error {
				t.Errorf("expected %q, got %q", tc.error, resp.Data.Error)
			}
		})
	}
}

type panicHandler struct{}

func (panicHandler) Validate(c *gin.Context) { panic("lookup table corrupted") }

func TestValidatePanicAnswersJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	validationHTTP.RegisterRoutes(r.Group("/api"), panicHandler{})

	req := httptest.NewRequest(http.MethodPost, "/api/forms/login/validate", strings.NewReader(`{"field":"email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ErrorCode != response.InternalServerErrorCode || resp.Message != response.DefaultErrorMessage {
		t.Errorf("unexpected body %+v", resp)
	}
}
