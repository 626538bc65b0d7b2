package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"course_market_backend/internal/config"
	"course_market_backend/internal/model"
	"course_market_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
}

func authTestRouter(cfg *config.Config, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := authTestConfig()
	r := authTestRouter(cfg, AuthMiddleware(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	cfg := authTestConfig()
	r := authTestRouter(cfg, AuthMiddleware(cfg))

	user := &model.User{Username: "bob"}
	user.ID = 7
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "bob" {
		t.Errorf("body = %q, want bob", w.Body.String())
	}
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	cfg := authTestConfig()
	r := authTestRouter(cfg, AuthMiddleware(cfg))

	token, err := util.GenerateJWT(&model.User{Username: "bob"}, "attacker-secret", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// 游客中间件：无令牌按匿名继续，有效令牌注入用户。
func TestTryAuthMiddleware(t *testing.T) {
	cfg := authTestConfig()
	r := authTestRouter(cfg, TryAuthMiddleware(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	if w.Code != http.StatusOK || w.Body.String() != "anonymous" {
		t.Errorf("anonymous: status = %d body = %q", w.Code, w.Body.String())
	}

	user := &model.User{Username: "bob"}
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "bob" {
		t.Errorf("authed body = %q, want bob", w.Body.String())
	}
}
