package courseValidator

import (
	"byway/dto"
	"byway/middleware"
	"byway/models"
	"byway/services"
	"byway/validators"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func normalizeCourse(d *dto.CourseDTO) {
	d.Name = strings.TrimSpace(d.Name)
	if cat, ok := models.ParseCategory(string(d.Category)); ok {
		d.Category = cat
	}
	if lvl, ok := models.ParseLevel(string(d.Level)); ok {
		d.Level = lvl
	}
	for i := range d.Contents {
		d.Contents[i].Name = strings.TrimSpace(d.Contents[i].Name)
	}
}

// Course validates a course create or update body and stores it as "validatedCourse".
func Course() fiber.Handler {
	return validators.Body[dto.CourseDTO]("validatedCourse", normalizeCourse)
}

// Filter validates the filter body and stores a services.FilterInput as "validatedFilter".
func Filter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(dto.FilterDTO)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		cats := make([]models.Category, 0, len(reqData.Categories))
		for _, raw := range reqData.Categories {
			cat, ok := models.ParseCategory(raw)
			if !ok {
				errors["categories"] = fmt.Sprintf("Unknown category %q.", raw)
				break
			}
			cats = append(cats, cat)
		}

		bucket, ok := models.ParseLectureBucket(reqData.LectureBucket)
		if !ok {
			errors["numberOfLectures"] = "Number of lectures must be one of 1-15, 16-30, 31-45, 46+."
		}

		if reqData.Rate < 0 || reqData.Rate > 5 {
			errors["rate"] = "Rate must be between 0 and 5."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFilter", &services.FilterInput{
			SortBy:        strings.TrimSpace(reqData.SortBy),
			Categories:    cats,
			Rate:          reqData.Rate,
			MinimumPrice:  reqData.MinimumPrice,
			MaximumPrice:  reqData.MaximumPrice,
			LectureBucket: bucket,
			PageNumber:    reqData.PageNumber,
			PageSize:      reqData.PageSize,
		})
		return c.Next()
	}
}

// Cart parses the cart body. Emptiness is reported by the catalog service.
func Cart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(dto.CartDTO)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		c.Locals("validatedCart", reqData)
		return c.Next()
	}
}
