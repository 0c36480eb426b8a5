package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	ListCategories(ctx *fiber.Ctx) error
	ListProducts(ctx *fiber.Ctx) error
	GetProduct(ctx *fiber.Ctx) error
}

type catalogController struct {
	catalogService service.ICatalogService
}

func NewCatalogController(catalogService service.ICatalogService) ICatalogController {
	return &catalogController{
		catalogService: catalogService,
	}
}

// Catalog reads are public; no session is needed.
func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("categories", c.ListCategories)
	h.Get("products", c.ListProducts)
	h.Get("products/:id", c.GetProduct)
}

func (c *catalogController) ListCategories(ctx *fiber.Ctx) error {
	res, err := c.catalogService.ListCategories(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get categories", res))
}

func (c *catalogController) ListProducts(ctx *fiber.Ctx) error {
	var req dto.ListProductsRequest
	if err := serverutils.ParseQuery(ctx, &req); err != nil {
		return err
	}

	filter := service.ProductFilter{Query: req.Query}
	if req.CategoryId != "" {
		id := uuid.MustParse(req.CategoryId)
		filter.CategoryId = &id
	}

	res, err := c.catalogService.ListProducts(ctx.UserContext(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get products", res))
}

func (c *catalogController) GetProduct(ctx *fiber.Ctx) error {
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.catalogService.GetProduct(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get product", res))
}
