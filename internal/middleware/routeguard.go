package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rahularya002/make-songs/internal/auth"
)

// SessionCookie carries the signed session token between requests.
const SessionCookie = "session_token"

// publicPaths may be visited without a session.
var publicPaths = map[string]bool{
	"/":      true,
	"/login": true,
}

// skipPrefixes are never guarded: static assets and the API/auth namespaces,
// which enforce their own session checks.
var skipPrefixes = []string{
	"/api",
	"/auth",
	"/static",
	"/healthz",
	"/favicon.ico",
	"/images",
	"/songs",
}

// RouteGuard classifies each page path as public or protected and redirects
// based on session presence: authenticated users are bounced off public pages
// to the dashboard, unauthenticated users are sent to login with the original
// path preserved as callbackUrl.
func RouteGuard(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		valid := false
		if token := c.Cookies(SessionCookie); token != "" {
			if _, err := tokens.Verify(token); err == nil {
				valid = true
			}
		}

		if publicPaths[path] {
			if valid {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
			return c.Next()
		}

		if !valid {
			return c.Redirect("/login?callbackUrl="+url.QueryEscape(path), fiber.StatusFound)
		}
		return c.Next()
	}
}
