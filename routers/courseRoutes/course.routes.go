package courseRoutes

import (
	courseController "byway/controllers/course"
	courseValidator "byway/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the catalog queries before the CRUD routes so that they win over /:id.
func SetupCourseRoutes(api fiber.Router, ctl *courseController.Controller) {
	courseGroup := api.Group("/courses")

	courseGroup.Get("/categories", ctl.Categories)
	courseGroup.Get("/top-categories", ctl.TopCategories)
	courseGroup.Get("/top-courses", ctl.TopCourses)
	courseGroup.Get("/top-courses/:category", ctl.TopCourses)
	courseGroup.Post("/cart", courseValidator.Cart(), ctl.Cart)
	courseGroup.Get("/search", ctl.Search)
	courseGroup.Get("/search-pagination", ctl.SearchPagination)
	courseGroup.Post("/filter", courseValidator.Filter(), ctl.Filter)

	ctl.Resource().Mount(courseGroup)
}
