package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/utils"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(), TerminalMiddleware())
	r.GET("/whoami", func(c *gin.Context) {
		ctx := c.Request.Context()
		user, _ := utils.GetUsernameFromContext(ctx)
		terminal, _ := utils.GetTerminalIdFromContext(ctx)
		c.JSON(http.StatusOK, gin.H{"user": user, "terminal": terminal})
	})
	r.GET("/manager", RequireManager(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("API_SECRET", "middleware-secret")
	manager, err := utils.JwtGenerate("ana", utils.RoleManager)
	if err != nil {
		t.Fatal(err)
	}
	employee, err := utils.JwtGenerate("ben", utils.RoleEmployee)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"anonymous open route", "/whoami", "", http.StatusOK},
		{"basic scheme", "/whoami", "Basic abc", http.StatusUnauthorized},
		{"bad token", "/whoami", "Bearer abc", http.StatusUnauthorized},
		{"anonymous manager route", "/manager", "", http.StatusUnauthorized},
		{"employee manager route", "/manager", "Bearer " + employee, http.StatusForbidden},
		{"manager route", "/manager", "Bearer " + manager, http.StatusNoContent},
	}
	r := newRouter()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Fatalf("%s: status %d, want %d", tt.name, w.Code, tt.want)
		}
	}
}

func TestTerminalMiddleware(t *testing.T) {
	t.Setenv("API_SECRET", "middleware-secret")
	token, err := utils.JwtGenerate("ana", utils.RoleManager)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-terminal-id", "till-3")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	want := `{"terminal":"till-3","user":"ana"}`
	if w.Body.String() != want {
		t.Fatalf("body = %s, want %s", w.Body.String(), want)
	}
}
