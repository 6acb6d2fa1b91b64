package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rahularya002/make-songs/internal/auth"
	"github.com/rahularya002/make-songs/internal/utils"
)

// ClaimsKey is the fiber.Ctx locals key holding the verified session claims.
const ClaimsKey = "claims"

// RequireSession authenticates API requests from either the session cookie or
// an Authorization bearer token and stores the claims for handlers.
func RequireSession(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			header := c.Get("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// SessionClaims retrieves the claims stored by RequireSession.
func SessionClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*auth.Claims)
	return claims, ok
}
