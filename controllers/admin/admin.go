package adminController

import (
	"byway/middleware"
	"byway/services"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	admin *services.AdminService
}

func New(admin *services.AdminService) *Controller {
	return &Controller{admin: admin}
}

func (ctl *Controller) Stats(c *fiber.Ctx) error {
	stats, err := ctl.admin.Stats(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully.", stats)
}
