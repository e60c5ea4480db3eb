package middleware

import (
	"errors"

	"go-catalog-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Status maps an error to the HTTP status it should be reported with.
func Status(err error) int {
	var (
		vErr *service.ValidationError
		nErr *service.NotFoundError
		fErr *fiber.Error
	)
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest
	case errors.As(err, &nErr):
		return fiber.StatusNotFound
	case errors.As(err, &fErr):
		return fErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error that reaches Fiber as {error, details}.
// Store failures are logged in full but reported without internals.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := Status(err)

		var (
			label   string
			details = err.Error()
		)
		switch code {
		case fiber.StatusBadRequest:
			label = "Validation failed"
		case fiber.StatusNotFound:
			label = "Not found"
		case fiber.StatusInternalServerError:
			label = "Internal Server Error"
			var sErr *service.StoreError
			if errors.As(err, &sErr) {
				details = "failed to " + sErr.Op
			} else {
				details = "unexpected error"
			}
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		default:
			label = utils.StatusMessage(code)
		}

		return c.Status(code).JSON(fiber.Map{"error": label, "details": details})
	}
}
