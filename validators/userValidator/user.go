package userValidator

import (
	"byway/dto"
	"byway/middleware"
	"byway/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// User validates an admin user body and stores it as "validatedUser".
func User() fiber.Handler {
	return validators.Body[dto.UserWriteDTO]("validatedUser", func(d *dto.UserWriteDTO) {
		d.Name = strings.TrimSpace(d.Name)
		d.Username = strings.ToLower(strings.TrimSpace(d.Username))
		d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	})
}

// Purchase parses the purchase body. An empty id list is reported by the purchase service.
func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(dto.PurchaseDTO)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}
