package serverutils

import (
	"errors"

	"ankibridge-be/internal/service"
	"ankibridge-be/internal/staging"
	"ankibridge-be/pkg/ankiconnect"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps errors bubbling out of controllers to HTTP
// statuses: contract violations to 400, missing sessions to 404, an
// unreachable store to 502, everything else to 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.Is(err, staging.ErrEmptySelection),
			errors.Is(err, staging.ErrIndexOutOfRange),
			errors.Is(err, service.ErrNoWords),
			errors.Is(err, service.ErrNoteRejected),
			errors.Is(err, service.ErrConfirmRequired),
			errors.Is(err, service.ErrNothingSelected):
			status = fiber.StatusBadRequest
		case errors.Is(err, service.ErrSessionNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, ankiconnect.ErrUnavailable):
			status = fiber.StatusBadGateway
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
