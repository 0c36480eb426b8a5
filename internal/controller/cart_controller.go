package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	UpdateQuantity(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type cartController struct {
	cartService service.ICartService
}

func NewCartController(cartService service.ICartService) ICartController {
	return &cartController{
		cartService: cartService,
	}
}

func (c *cartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cart/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Get("", c.Get)
	h.Delete("", c.Clear)
	h.Post("items", c.Add)
	h.Put("items/:id", c.UpdateQuantity)
	h.Delete("items/:id", c.Remove)
}

func (c *cartController) Get(ctx *fiber.Ctx) error {
	res, err := c.cartService.GetCart(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get cart", res))
}

func (c *cartController) Add(ctx *fiber.Ctx) error {
	var req dto.AddCartItemRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.cartService.Add(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add to cart", res))
}

func (c *cartController) UpdateQuantity(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCartItemRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.cartService.UpdateQuantity(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update cart item", res))
}

func (c *cartController) Remove(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.cartService.Remove(ctx.UserContext(), serverutils.SessionID(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove cart item", res))
}

func (c *cartController) Clear(ctx *fiber.Ctx) error {
	if err := c.cartService.Clear(ctx.UserContext(), serverutils.SessionID(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear cart", nil))
}
