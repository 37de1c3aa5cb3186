package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"staffhub/internal/domain"
	"staffhub/internal/modules/auth"
	"staffhub/internal/pkg/jwt"
)

type stubRefresher struct {
	result *auth.RefreshResult
	err    error
	called bool
}

func (s *stubRefresher) Refresh(ctx context.Context, refreshRaw string) (*auth.RefreshResult, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func testGuard(refresher SessionRefresher) (*SessionGuard, *jwt.Issuer) {
	issuer := jwt.NewIssuer("mw-access-secret", "mw-refresh-secret", 15*time.Minute, time.Hour)
	guard := NewSessionGuard(issuer, refresher, SessionConfig{
		PublicPrefixes: []string{"/api/v1/auth/login", "/health"},
		RoleAccess: map[string][]domain.UserRole{
			"/api/v1/admin":     {domain.RoleAdmin},
			"/api/v1/employees": {domain.RoleAdmin, domain.RoleHR},
			"/api/v1/profile":   {domain.RoleAdmin, domain.RoleHR, domain.RoleEmployee},
		},
		LoginPath:        "/login",
		UnauthorizedPath: "/unauthorized",
		Cookies: auth.CookieConfig{
			SameSite:    http.SameSiteStrictMode,
			RefreshPath: "/api/v1/auth/refresh",
			AccessTTL:   900,
			RefreshTTL:  2592000,
		},
	})
	return guard, issuer
}

func testRouter(guard *SessionGuard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(guard.Handler())
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.GetInt64("user_id"),
			"role":        c.GetString("role"),
			"header_id":   c.Request.Header.Get("x-user-id"),
			"header_role": c.Request.Header.Get("x-user-role"),
		})
	}
	router.GET("/health", echo)
	router.GET("/api/v1/admin/users", echo)
	router.GET("/api/v1/employees", echo)
	router.GET("/api/v1/profile", echo)
	router.GET("/dashboard", echo)
	return router
}

func TestSessionGuard_PublicPathPassesThrough(t *testing.T) {
	guard, _ := testGuard(&stubRefresher{})
	router := testRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGuard_ValidAccessCookie(t *testing.T) {
	guard, issuer := testGuard(&stubRefresher{})
	router := testRouter(guard)

	token, err := issuer.IssueAccess(42, "hr@example.com", string(domain.RoleHR), nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/employees", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "HR")
}

func TestSessionGuard_MissingSessionOnAPIReturnsJSON(t *testing.T) {
	guard, _ := testGuard(&stubRefresher{err: errors.New("no session")})
	router := testRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestSessionGuard_MissingSessionOnPageRedirects(t *testing.T) {
	guard, _ := testGuard(&stubRefresher{})
	router := testRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?from=%2Fdashboard", w.Header().Get("Location"))
}

func TestSessionGuard_RoleDenied(t *testing.T) {
	guard, issuer := testGuard(&stubRefresher{})
	router := testRouter(guard)

	token, err := issuer.IssueAccess(7, "emp@example.com", string(domain.RoleEmployee), nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestSessionGuard_ExpiredAccessFallsBackToRefresh(t *testing.T) {
	refresher := &stubRefresher{
		result: &auth.RefreshResult{
			User:         auth.UserClaims{ID: 42, Email: "hr@example.com", Role: string(domain.RoleHR)},
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		},
	}
	guard, _ := testGuard(refresher)
	router := testRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/employees", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: "expired-garbage"})
	req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: "still-valid-refresh"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, refresher.called)

	cookies := w.Result().Cookies()
	names := make(map[string]string)
	for _, ck := range cookies {
		names[ck.Name] = ck.Value
	}
	assert.Equal(t, "new-access", names[auth.AccessCookieName])
	assert.Equal(t, "new-refresh", names[auth.RefreshCookieName])
}

func TestSessionGuard_FailedRefreshClearsCookies(t *testing.T) {
	guard, _ := testGuard(&stubRefresher{err: errors.New("reuse detected")})
	router := testRouter(guard)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: "replayed-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	for _, ck := range w.Result().Cookies() {
		assert.Equal(t, "", ck.Value)
		assert.Less(t, ck.MaxAge, 0)
	}
}

func TestSessionGuard_StripsSpoofedIdentityHeaders(t *testing.T) {
	guard, issuer := testGuard(&stubRefresher{})
	router := testRouter(guard)

	token, err := issuer.IssueAccess(42, "hr@example.com", string(domain.RoleHR), nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/employees", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookieName, Value: token})
	req.Header.Set("x-user-id", "1")
	req.Header.Set("x-user-role", "ADMIN")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"header_id":"42"`)
	assert.Contains(t, w.Body.String(), `"header_role":"HR"`)
}
