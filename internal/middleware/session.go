package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"staffhub/internal/domain"
	"staffhub/internal/modules/auth"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccessVerifier checks an access token and returns its claims.
type AccessVerifier interface {
	VerifyAccess(tokenStr string) (*jwt.Claims, error)
}

// SessionRefresher rotates a refresh token into a fresh cookie pair.
type SessionRefresher interface {
	Refresh(ctx context.Context, refreshRaw string) (*auth.RefreshResult, error)
}

// SessionConfig describes which paths are public, which roles may enter each
// protected prefix, and where unauthenticated browsers get redirected.
type SessionConfig struct {
	PublicPrefixes   []string
	RoleAccess       map[string][]domain.UserRole
	LoginPath        string
	UnauthorizedPath string
	Cookies          auth.CookieConfig
}

// SessionGuard is the request gate: every route group except the public ones
// runs behind it. It resolves the caller's identity from the access cookie,
// falls back to refresh rotation, enforces the role table, and forwards
// identity downstream via context keys and x-user-* headers.
type SessionGuard struct {
	verifier  AccessVerifier
	refresher SessionRefresher
	cfg       SessionConfig
}

func NewSessionGuard(verifier AccessVerifier, refresher SessionRefresher, cfg SessionConfig) *SessionGuard {
	return &SessionGuard{verifier: verifier, refresher: refresher, cfg: cfg}
}

func (g *SessionGuard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Identity headers are set by this middleware only. Anything the
		// client sent must go.
		stripIdentityHeaders(c.Request)

		path := c.Request.URL.Path
		if g.isPublic(path) {
			c.Next()
			return
		}

		claims := g.resolveClaims(c)
		if claims == nil {
			g.denyUnauthenticated(c)
			return
		}

		if !g.roleAllowed(path, domain.UserRole(claims.Role)) {
			g.denyForbidden(c)
			return
		}

		forwardIdentity(c, claims)
		c.Next()
	}
}

// resolveClaims tries the access cookie first, then attempts a transparent
// refresh rotation. A successful rotation writes the new cookie pair onto
// this response before the request proceeds.
func (g *SessionGuard) resolveClaims(c *gin.Context) *jwt.Claims {
	if accessRaw, err := c.Cookie(auth.AccessCookieName); err == nil && accessRaw != "" {
		if claims, err := g.verifier.VerifyAccess(accessRaw); err == nil {
			return claims
		}
	}

	refreshRaw, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || refreshRaw == "" {
		return nil
	}

	result, err := g.refresher.Refresh(c.Request.Context(), refreshRaw)
	if err != nil {
		g.cfg.Cookies.ClearAuthCookies(c)
		return nil
	}

	g.cfg.Cookies.SetAuthCookies(c, result.AccessToken, result.RefreshToken)
	return &jwt.Claims{
		UserID:     result.User.ID,
		Email:      result.User.Email,
		Role:       result.User.Role,
		EmployeeID: result.User.EmployeeID,
	}
}

func (g *SessionGuard) isPublic(path string) bool {
	for _, prefix := range g.cfg.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// roleAllowed picks the longest matching prefix in the role table. A path
// with no entry only requires authentication.
func (g *SessionGuard) roleAllowed(path string, role domain.UserRole) bool {
	var (
		bestLen   = -1
		bestRoles []domain.UserRole
	)
	for prefix, roles := range g.cfg.RoleAccess {
		if strings.HasPrefix(path, prefix) && len(prefix) > bestLen {
			bestLen = len(prefix)
			bestRoles = roles
		}
	}
	if bestLen < 0 {
		return true
	}
	for _, allowed := range bestRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

func (g *SessionGuard) denyUnauthenticated(c *gin.Context) {
	if wantsJSON(c) {
		response.AbortError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}
	target := g.cfg.LoginPath + "?from=" + url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

func (g *SessionGuard) denyForbidden(c *gin.Context) {
	if wantsJSON(c) {
		response.AbortError(c, http.StatusForbidden, response.CodeForbidden, "Access denied: insufficient permissions")
		return
	}
	c.Redirect(http.StatusFound, g.cfg.UnauthorizedPath)
	c.Abort()
}

// API routes get JSON errors; everything else is treated as a browser
// navigation and redirected.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func stripIdentityHeaders(r *http.Request) {
	r.Header.Del("x-user-id")
	r.Header.Del("x-user-role")
	r.Header.Del("x-user-email")
	r.Header.Del("x-employee-id")
}

func forwardIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("email", claims.Email)

	c.Request.Header.Set("x-user-id", strconv.FormatInt(claims.UserID, 10))
	c.Request.Header.Set("x-user-role", claims.Role)
	c.Request.Header.Set("x-user-email", claims.Email)
	if claims.EmployeeID != nil {
		c.Set("employee_id", *claims.EmployeeID)
		c.Request.Header.Set("x-employee-id", strconv.FormatInt(*claims.EmployeeID, 10))
	}
}
