package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"marketplace_escrow/internal/adapter/http/middleware"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/pkg"

	"github.com/gin-gonic/gin"
)

var (
	customer = entities.Actor{UserID: "cust-1", Role: entities.RoleCustomer}
	provider = entities.Actor{UserID: "prov-1", Role: entities.RoleProvider}
	admin    = entities.Actor{UserID: "admin-1", Role: entities.RoleAdmin}
)

func withActor(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetMockActor(c, actor.UserID, actor.Role, actor.CompanyID)
		c.Next()
	}
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
