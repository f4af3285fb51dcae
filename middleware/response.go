package middleware

import (
	"byway/utils/apperr"
	"byway/utils/logger"
	"errors"

	"github.com/gofiber/fiber/v2"
)

var log = logger.Nop()

// SetLogger sets the logger used for unexpected errors.
func SetLogger(l *logger.Logger) {
	if l != nil {
		log = l
	}
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ErrorResponse writes err in the response envelope. Unexpected errors are logged and their detail hidden.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind == apperr.KindUnexpected {
		log.Error("Unhandled error", "method", c.Method(), "path", c.Path(), "request_id", RequestIDFrom(c), "error", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
	}

	var data interface{}
	switch {
	case ae.Field != "":
		data = fiber.Map{ae.Field: ae.Message}
	case len(ae.IDs) > 0:
		data = fiber.Map{"ids": ae.IDs}
	}
	return JsonResponse(c, ae.Kind.Status(), false, ae.Message, data)
}

// ErrorHandler is the fiber fallback for errors returned by handlers and for unmatched routes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonResponse(c, fe.Code, false, fe.Message, nil)
	}
	return ErrorResponse(c, err)
}
