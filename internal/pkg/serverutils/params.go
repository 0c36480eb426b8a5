package serverutils

import (
	"storefront-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParamUUID reads a path parameter that must be a UUID.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NewValidationError(name, "must be a valid UUID")
	}
	return id, nil
}

// ParseBody decodes the JSON body into out and validates it.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.NewValidationError("body", "invalid request body")
	}
	return ValidateRequest(out)
}

// ParseQuery binds the query string into out and validates it.
func ParseQuery(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		return apperror.NewValidationError("query", "invalid query string")
	}
	return ValidateRequest(out)
}
