package authRoutes

import (
	authController "byway/controllers/auth"
	authValidator "byway/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, ctl *authController.Controller) {
	authGroup := api.Group("/auth")

	authGroup.Post("/register", authValidator.Register(), ctl.Register)
	authGroup.Post("/login", authValidator.Login(), ctl.Login)
}
