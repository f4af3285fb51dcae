package authController

import (
	"byway/dto"
	"byway/middleware"
	"byway/services"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	auth *services.AuthService
}

func New(auth *services.AuthService) *Controller {
	return &Controller{auth: auth}
}

func (ctl *Controller) Register(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*dto.RegisterDTO)

	result, err := ctl.auth.Register(c.UserContext(), *reqData)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully!", result)
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*dto.LoginDTO)

	tok, err := ctl.auth.Login(c.UserContext(), reqData.Username, reqData.Password)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", tok)
}
