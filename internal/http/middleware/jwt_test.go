package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tictactoe_arena/internal/service"

	"github.com/gin-gonic/gin"
)

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWT(), func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		name, _ := c.Get("display_name")
		c.JSON(200, gin.H{"user_id": uid, "display_name": name})
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")
	service.InitJWT()

	token, err := service.GenerateJWT("tg:7", "Greta")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	r := protectedRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid bearer", header: "Bearer " + token, status: http.StatusOK},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not a bearer", header: token, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", status: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.status, w.Body.String())
			}
		})
	}
}
