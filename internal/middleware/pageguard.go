package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie checked by the page guard for browser navigation.
const SessionCookieName = "session_token"

// PageGuard redirects unauthenticated browser navigation on the given path
// prefixes to the sign-in page with a callback URL. It only inspects GET
// requests that accept HTML; API clients are unaffected. No role
// differentiation: any session cookie passes.
func PageGuard(prefixes []string, signinPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || !acceptsHTML(c.GetHeader("Accept")) {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		guarded := false
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				guarded = true
				break
			}
		}
		if !guarded {
			c.Next()
			return
		}
		if _, err := c.Cookie(SessionCookieName); err == nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, signinPath+"?callbackUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

func acceptsHTML(accept string) bool {
	return strings.Contains(accept, "text/html")
}
