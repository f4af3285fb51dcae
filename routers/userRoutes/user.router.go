package userRoutes

import (
	userController "byway/controllers/user"
	"byway/middleware"
	userValidator "byway/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, ctl *userController.Controller) {
	userGroup := api.Group("/users")
	signedIn := middleware.CheckPermissionMiddleware(middleware.Authenticated)

	userGroup.Post("/purchase", signedIn, userValidator.Purchase(), ctl.Purchase)
	userGroup.Get("/myCourses", signedIn, ctl.MyCourses)
	userGroup.Get("/username/:username", ctl.ByUsername)
	userGroup.Get("/email/:email", ctl.ByEmail)

	ctl.Resource().Mount(userGroup)
}
