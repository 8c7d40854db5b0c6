package serverutils

import (
	"errors"
	"log"

	"second-brain-be/pkg/docstore"
	"second-brain-be/pkg/pipeline"
	"second-brain-be/pkg/pipeline/normalize"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors onto HTTP statuses. Anything
// unrecognized becomes a 500 with a generic body.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  validationErr.Fields,
			})
		case errors.Is(err, normalize.ErrEmptyInput):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Input is empty",
			})
		case errors.Is(err, pipeline.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Session not found",
			})
		case errors.Is(err, docstore.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Document not found",
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"message": fiberErr.Message,
			})
		}

		log.Printf("[ERROR] Unhandled error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}
