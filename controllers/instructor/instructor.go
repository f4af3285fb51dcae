package instructorController

import (
	"byway/controllers/crud"
	"byway/dto"
	"byway/middleware"
	"byway/models"
	"byway/repository"
	"byway/services"
	"byway/utils/apperr"
	instructorValidator "byway/validators/instructor"
	"context"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	catalog     *services.CatalogService
	instructors *repository.InstructorRepo
}

func New(catalog *services.CatalogService, instructors *repository.InstructorRepo) *Controller {
	return &Controller{catalog: catalog, instructors: instructors}
}

func (ctl *Controller) Resource() *crud.Resource[models.Instructor, dto.InstructorDTO] {
	return &crud.Resource[models.Instructor, dto.InstructorDTO]{
		Name:  "Instructor",
		Store: ctl.instructors,
		Rules: crud.Rules{
			List:   middleware.Public,
			All:    middleware.AdminOnly,
			Get:    middleware.Public,
			Create: middleware.AdminOnly,
			Update: middleware.AdminOnly,
			Delete: middleware.AdminOnly,
		},
		Body:    instructorValidator.Instructor(),
		BodyKey: "validatedInstructor",
		ToDTO:   dto.FromInstructor,
		ToEntity: func(_ context.Context, d *dto.InstructorDTO) (models.Instructor, error) {
			return d.ToInstructor(), nil
		},
		Apply: func(_ context.Context, i *models.Instructor, d *dto.InstructorDTO) error {
			d.ApplyTo(i)
			return nil
		},
		BeforeDelete: ctl.refuseWithCourses,
		AfterWrite:   ctl.catalog.Invalidate,
	}
}

func (ctl *Controller) refuseWithCourses(ctx context.Context, i *models.Instructor) error {
	n, err := ctl.instructors.CourseCount(ctx, i.ID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if n > 0 {
		return apperr.Conflict("Cannot delete instructor with associated courses.", i.ID)
	}
	return nil
}

func (ctl *Controller) Top(c *fiber.Ctx) error {
	stats, err := ctl.catalog.TopInstructors(c.UserContext(), c.QueryInt("top", 10))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	out := make([]dto.TopInstructorDTO, len(stats))
	for i := range stats {
		out[i] = dto.FromInstructorStat(&stats[i])
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Top instructors fetched successfully.", out)
}

func (ctl *Controller) ByName(c *fiber.Ctx) error {
	inst, err := ctl.catalog.InstructorByName(c.UserContext(), c.Query("instructorName"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor fetched successfully.", dto.FromInstructor(inst))
}

func (ctl *Controller) SearchPagination(c *fiber.Ctx) error {
	page, err := ctl.catalog.SearchInstructors(c.UserContext(), c.Query("query"),
		c.QueryInt("pageNumber", 1), c.QueryInt("pageSize", models.DefaultInstructorPage))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search completed successfully.", models.MapPage(page, dto.FromInstructor))
}
