package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
}

type sessionController struct{}

func NewSessionController() ISessionController {
	return &sessionController{}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
}

// Create issues a fresh session id. Nothing is stored; the id only exists once a cart,
// order or chat row references it.
func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res := dto.CreateSessionResponse{SessionId: uuid.New()}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Session created", res))
}
