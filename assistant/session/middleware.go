package session

import (
	"strings"

	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const (
	localsSessionID = "session_id"

	HeaderSessionToken = "X-Session-Token"
	QuerySessionToken  = "session_token"
)

// Middleware resolves the session token when one is sent. Requests without a
// token pass through with no session; a bad token is rejected.
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return c.Next()
		}

		id, err := tokens.Validate(token)
		if err != nil {
			return err
		}

		c.Locals(localsSessionID, id)
		return c.Next()
	}
}

// TokenFromRequest reads the bearer header, then X-Session-Token, then the query
func TokenFromRequest(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if token := c.Get(HeaderSessionToken); token != "" {
		return token
	}
	return c.Query(QuerySessionToken)
}

// GetSessionID extracts the session id set by Middleware
func GetSessionID(c *fiber.Ctx) (kernel.SessionID, bool) {
	id, ok := c.Locals(localsSessionID).(kernel.SessionID)
	return id, ok
}
