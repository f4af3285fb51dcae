package userController

import (
	"byway/controllers/crud"
	"byway/dto"
	"byway/middleware"
	"byway/models"
	"byway/repository"
	"byway/services"
	"byway/utils/apperr"
	userValidator "byway/validators/userValidator"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	users    *repository.UserRepo
	purchase *services.PurchaseService
	hasher   services.PasswordHasher
}

func New(users *repository.UserRepo, purchase *services.PurchaseService, hasher services.PasswordHasher) *Controller {
	return &Controller{users: users, purchase: purchase, hasher: hasher}
}

// Resource is the admin CRUD surface of /api/users. A user may read their own record.
func (ctl *Controller) Resource() *crud.Resource[models.User, dto.UserWriteDTO] {
	return &crud.Resource[models.User, dto.UserWriteDTO]{
		Name:  "User",
		Store: ctl.users,
		Rules: crud.Rules{
			List:   middleware.AdminOnly,
			All:    middleware.AdminOnly,
			Get:    middleware.SameUserOrAdmin,
			Create: middleware.AdminOnly,
			Update: middleware.AdminOnly,
			Delete: middleware.AdminOnly,
		},
		Body:    userValidator.User(),
		BodyKey: "validatedUser",
		ToDTO:   toWrite,
		ToEntity: func(_ context.Context, d *dto.UserWriteDTO) (models.User, error) {
			if d.Password == "" {
				return models.User{}, apperr.Input("password", "Password cannot be null or empty!")
			}
			hashed, err := ctl.hasher.Hash(d.Password)
			if err != nil {
				return models.User{}, apperr.Unexpected(err)
			}
			return models.User{
				Name:           d.Name,
				Username:       d.Username,
				Email:          d.Email,
				HashedPassword: hashed,
				PictureURL:     strings.TrimSpace(d.PictureURL),
				IsAdmin:        d.IsAdmin,
			}, nil
		},
		Apply: func(_ context.Context, u *models.User, d *dto.UserWriteDTO) error {
			u.Name = d.Name
			u.PictureURL = strings.TrimSpace(d.PictureURL)
			u.IsAdmin = d.IsAdmin
			if d.Password != "" {
				hashed, err := ctl.hasher.Hash(d.Password)
				if err != nil {
					return apperr.Unexpected(err)
				}
				u.HashedPassword = hashed
			}
			return nil
		},
		BeforeDelete: ctl.refuseEnrolled,
	}
}

// toWrite echoes a user in the write shape without any password material.
func toWrite(u *models.User) dto.UserWriteDTO {
	return dto.UserWriteDTO{
		ID:         u.ID,
		Name:       u.Name,
		Username:   u.Username,
		Email:      u.Email,
		PictureURL: u.PictureURL,
		IsAdmin:    u.IsAdmin,
	}
}

func (ctl *Controller) refuseEnrolled(ctx context.Context, u *models.User) error {
	n, err := ctl.users.EnrollmentCount(ctx, u.ID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if n > 0 {
		return apperr.Conflict("Cannot delete user with purchased courses.", u.ID)
	}
	return nil
}

func (ctl *Controller) Purchase(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)
	reqData := c.Locals("validatedPurchase").(*dto.PurchaseDTO)

	result, err := ctl.purchase.Purchase(c.UserContext(), p.UserID, reqData.CourseIDs)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses purchased successfully.", result)
}

func (ctl *Controller) MyCourses(c *fiber.Ctx) error {
	p := middleware.CurrentPrincipal(c)
	ids, err := ctl.purchase.MyCourses(c.UserContext(), p.UserID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", ids)
}

func (ctl *Controller) ByUsername(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Params("username"))
	if username == "" {
		return middleware.ErrorResponse(c, apperr.Input("username", "Username is required."))
	}
	u, err := ctl.users.GetByUsername(c.UserContext(), username)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", dto.FromUser(u))
}

func (ctl *Controller) ByEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Params("email"))
	if email == "" {
		return middleware.ErrorResponse(c, apperr.Input("email", "Email is required."))
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return middleware.ErrorResponse(c, apperr.Input("email", "Invalid email format."))
	}
	u, err := ctl.users.GetByEmail(c.UserContext(), email)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", dto.FromUser(u))
}
