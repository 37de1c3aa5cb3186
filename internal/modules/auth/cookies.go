package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// CookieConfig controls how the token cookies are written. The refresh
// cookie is scoped to the refresh endpoint path so it never rides along on
// ordinary API calls.
type CookieConfig struct {
	Secure      bool
	SameSite    http.SameSite
	RefreshPath string
	AccessTTL   int
	RefreshTTL  int
}

func (cc CookieConfig) SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(AccessCookieName, accessToken, cc.AccessTTL, "/", "", cc.Secure, true)
	c.SetCookie(RefreshCookieName, refreshToken, cc.RefreshTTL, cc.RefreshPath, "", cc.Secure, true)
}

func (cc CookieConfig) ClearAuthCookies(c *gin.Context) {
	c.SetSameSite(cc.SameSite)
	c.SetCookie(AccessCookieName, "", -1, "/", "", cc.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, cc.RefreshPath, "", cc.Secure, true)
}
