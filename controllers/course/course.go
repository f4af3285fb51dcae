package courseController

import (
	"byway/controllers/crud"
	"byway/dto"
	"byway/middleware"
	"byway/models"
	"byway/repository"
	"byway/services"
	"byway/utils/apperr"
	courseValidator "byway/validators/course"
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	catalog     *services.CatalogService
	courses     *repository.CourseRepo
	instructors *repository.InstructorRepo
}

func New(catalog *services.CatalogService, courses *repository.CourseRepo, instructors *repository.InstructorRepo) *Controller {
	return &Controller{catalog: catalog, courses: courses, instructors: instructors}
}

// Resource is the CRUD surface of /api/courses. Reads are public, writes are admin only, and a
// course with enrolled users can be neither changed nor deleted.
func (ctl *Controller) Resource() *crud.Resource[models.Course, dto.CourseDTO] {
	return &crud.Resource[models.Course, dto.CourseDTO]{
		Name:  "Course",
		Store: ctl.courses,
		Rules: crud.Rules{
			List:   middleware.Public,
			All:    middleware.AdminOnly,
			Get:    middleware.Public,
			Create: middleware.AdminOnly,
			Update: middleware.AdminOnly,
			Delete: middleware.AdminOnly,
		},
		Body:    courseValidator.Course(),
		BodyKey: "validatedCourse",
		ToDTO:   dto.FromCourse,
		ToEntity: func(ctx context.Context, d *dto.CourseDTO) (models.Course, error) {
			c := d.ToCourse()
			inst, err := ctl.instructors.GetByID(ctx, d.InstructorID)
			if err != nil {
				return c, err
			}
			c.Instructor = inst
			return c, nil
		},
		Apply: func(ctx context.Context, c *models.Course, d *dto.CourseDTO) error {
			d.ApplyTo(c)
			if c.Instructor == nil {
				inst, err := ctl.instructors.GetByID(ctx, c.InstructorID)
				if err != nil {
					return err
				}
				c.Instructor = inst
			}
			return nil
		},
		Validate:     ctl.validate,
		BeforeUpdate: ctl.refuseEnrolled("Cannot change a course with enrolled users."),
		BeforeDelete: ctl.refuseEnrolled("Cannot delete course with enrolled users."),
		AfterWrite:   ctl.catalog.Invalidate,
	}
}

func (ctl *Controller) validate(ctx context.Context, d *dto.CourseDTO) error {
	ok, err := ctl.instructors.Exists(ctx, d.InstructorID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	if !ok {
		return apperr.Input("instructorId", fmt.Sprintf("Instructor with ID %d does not exist.", d.InstructorID))
	}
	return nil
}

func (ctl *Controller) refuseEnrolled(msg string) func(context.Context, *models.Course) error {
	return func(ctx context.Context, c *models.Course) error {
		n, err := ctl.courses.EnrolledCount(ctx, c.ID)
		if err != nil {
			return apperr.Unexpected(err)
		}
		if n > 0 {
			return apperr.Conflict(msg, c.ID)
		}
		return nil
	}
}

func (ctl *Controller) Categories(c *fiber.Ctx) error {
	cats, err := ctl.catalog.Categories(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", cats)
}

func (ctl *Controller) TopCategories(c *fiber.Ctx) error {
	stats, err := ctl.catalog.TopCategories(c.UserContext(), c.QueryInt("top", 5))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Top categories fetched successfully.", stats)
}

func (ctl *Controller) TopCourses(c *fiber.Ctx) error {
	var category models.Category
	if raw := strings.TrimSpace(c.Params("category")); raw != "" {
		cat, ok := models.ParseCategory(raw)
		if !ok {
			return middleware.ErrorResponse(c, apperr.Input("category", fmt.Sprintf("Unknown category %q.", raw)))
		}
		category = cat
	}
	defaultTop := 5
	if category != "" {
		defaultTop = 4
	}
	courses, err := ctl.catalog.TopCourses(c.UserContext(), category, c.QueryInt("top", defaultTop))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Top courses fetched successfully.", dto.FromCourses(courses))
}

func (ctl *Controller) Cart(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCart").(*dto.CartDTO)
	courses, err := ctl.catalog.Cart(c.UserContext(), reqData.CourseIDs)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully.", dto.FromCourses(courses))
}

func (ctl *Controller) Search(c *fiber.Ctx) error {
	courses, err := ctl.catalog.Search(c.UserContext(), c.Query("query"), c.QueryInt("top", models.DefaultSearchTop))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search completed successfully.", dto.FromCourses(courses))
}

func (ctl *Controller) SearchPagination(c *fiber.Ctx) error {
	page, err := ctl.catalog.SearchCourses(c.UserContext(), c.Query("query"),
		c.QueryInt("pageNumber", 1), c.QueryInt("pageSize", models.DefaultCourseSearch))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search completed successfully.", models.MapPage(page, dto.FromCourse))
}

func (ctl *Controller) Filter(c *fiber.Ctx) error {
	in := c.Locals("validatedFilter").(*services.FilterInput)
	page, err := ctl.catalog.Filter(c.UserContext(), *in)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses filtered successfully.", models.MapPage(page, dto.FromCourse))
}
