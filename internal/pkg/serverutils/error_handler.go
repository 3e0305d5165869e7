package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrNotFound marks lookups for resources the caller named explicitly.
// The error handler maps it to 404; everything unrecognized becomes 500.
var ErrNotFound = errors.New("resource not found")

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if errors.Is(err, ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
