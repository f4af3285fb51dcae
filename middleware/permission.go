package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Rule decides whether the caller may act on the resource owned by targetID.
// Anonymous callers arrive as a nil principal; targetID is zero when no single resource is addressed.
type Rule func(p *Principal, targetID uint) bool

func Public(*Principal, uint) bool { return true }

func Authenticated(p *Principal, _ uint) bool { return p != nil }

func AdminOnly(p *Principal, _ uint) bool { return p.IsAdmin() }

func SameUserOrAdmin(p *Principal, targetID uint) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || (targetID != 0 && p.UserID == targetID)
}

// Deny answers a refused rule: 401 for anonymous callers, 403 otherwise.
func Deny(c *fiber.Ctx, p *Principal) error {
	if p == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: missing or invalid token", nil)
	}
	return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
}

// CheckPermissionMiddleware evaluates rule against the caller and the numeric :id route param.
func CheckPermissionMiddleware(rule Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := CurrentPrincipal(c)
		id, _ := c.ParamsInt("id")
		if id < 0 {
			id = 0
		}
		if !rule(p, uint(id)) {
			return Deny(c, p)
		}
		return c.Next()
	}
}
