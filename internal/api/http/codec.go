package httpapi

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the body returned whenever a request cannot be served.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

func newErrorResponse(msg string, now time.Time) ErrorResponse {
	return ErrorResponse{
		Error:   true,
		Date:    now.UTC().Format(time.RFC3339),
		Message: msg,
	}
}

// writeError renders a domain error. Clients read the error flag in the body,
// so the HTTP status stays 200.
func writeError(c *fiber.Ctx, err error) error {
	log.Printf("ERROR: %s %s: %v", c.Method(), c.OriginalURL(), err)
	return c.Status(fiber.StatusOK).JSON(newErrorResponse(err.Error(), time.Now()))
}

// ErrorHandler renders framework errors (unknown routes, panics) in the same
// shape, keeping their HTTP status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(newErrorResponse(err.Error(), time.Now()))
}
