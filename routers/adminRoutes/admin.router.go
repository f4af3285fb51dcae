package adminRoutes

import (
	adminController "byway/controllers/admin"
	"byway/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(api fiber.Router, ctl *adminController.Controller) {
	adminGroup := api.Group("/admin", middleware.CheckPermissionMiddleware(middleware.AdminOnly))

	adminGroup.Get("/stats", ctl.Stats)
}
