package serverutils

import (
	"errors"

	"storefront-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the standard envelope.
// Internal failures are reported without their message; services have already logged them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err)
	}
}

// FiberErrorHandler covers errors raised outside the middleware chain (routing, body limits).
func FiberErrorHandler(ctx *fiber.Ctx, err error) error {
	return writeError(ctx, err)
}

func writeError(ctx *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	status := apperror.StatusCode(err)
	if status == fiber.StatusInternalServerError {
		return ctx.Status(status).JSON(ErrorResponse(status, "Internal server error"))
	}

	res := ErrorResponse(status, err.Error())
	var vErr *apperror.ValidationError
	if errors.As(err, &vErr) {
		res.Message = "Validation failed"
		res.Errors = vErr.Fields
	}
	return ctx.Status(status).JSON(res)
}
