package authValidator

import (
	"byway/dto"
	"byway/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Register parses the registration body. Field rules are enforced by the auth service so that
// every caller gets the same messages.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(dto.RegisterDTO)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.FirstName = strings.TrimSpace(reqData.FirstName)
		reqData.LastName = strings.TrimSpace(reqData.LastName)

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(dto.LoginDTO)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
