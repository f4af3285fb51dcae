package instructorValidator

import (
	"byway/dto"
	"byway/models"
	"byway/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Instructor validates an instructor body and stores it as "validatedInstructor".
func Instructor() fiber.Handler {
	return validators.Body[dto.InstructorDTO]("validatedInstructor", func(d *dto.InstructorDTO) {
		d.Name = strings.TrimSpace(d.Name)
		if cat, ok := models.ParseCategory(string(d.Title)); ok {
			d.Title = cat
		}
	})
}
