package middleware

import (
	"byway/models"
	"byway/utils/token"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Principal is the authenticated caller, as carried by the access token.
type Principal struct {
	UserID   uint
	Email    string
	Username string
	Role     string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// CurrentPrincipal returns the caller attached by JWTMiddleware or OptionalJWT, or nil.
func CurrentPrincipal(c *fiber.Ctx) *Principal {
	p, _ := c.Locals(principalKey).(*Principal)
	return p
}

func bearer(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(authHeader[len("Bearer "):]), true
}

func attach(c *fiber.Ctx, tokens TokenParser, raw string) bool {
	claims, err := tokens.Parse(raw)
	if err != nil {
		return false
	}
	c.Locals(principalKey, &Principal{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
		Role:     claims.Role,
	})
	c.Locals("userId", claims.UserID)
	return true
}

// JWTMiddleware rejects requests without a valid bearer token.
func JWTMiddleware(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
		}
		raw, ok := bearer(c)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
		}
		if !attach(c, tokens, raw) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}
		return c.Next()
	}
}

// OptionalJWT attaches the caller when a token is sent and lets anonymous requests through.
// A token that is sent but invalid is still rejected.
func OptionalJWT(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		raw, ok := bearer(c)
		if !ok || !attach(c, tokens, raw) {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
		}
		return c.Next()
	}
}
