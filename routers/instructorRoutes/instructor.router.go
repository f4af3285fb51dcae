package instructorRoutes

import (
	instructorController "byway/controllers/instructor"

	"github.com/gofiber/fiber/v2"
)

func SetupInstructorRoutes(api fiber.Router, ctl *instructorController.Controller) {
	instructorGroup := api.Group("/instructors")

	instructorGroup.Get("/top", ctl.Top)
	instructorGroup.Get("/name", ctl.ByName)
	instructorGroup.Get("/search-pagination", ctl.SearchPagination)

	ctl.Resource().Mount(instructorGroup)
}
