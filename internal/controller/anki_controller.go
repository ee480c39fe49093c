package controller

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/serverutils"
	"ankibridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnkiController interface {
	RegisterRoutes(r fiber.Router)
	TestConnection(ctx *fiber.Ctx) error
	Decks(ctx *fiber.Ctx) error
	CreateDeck(ctx *fiber.Ctx) error
	Models(ctx *fiber.Ctx) error
	ModelFields(ctx *fiber.Ctx) error
}

type ankiController struct {
	ankiService service.IAnkiService
}

func NewAnkiController(ankiService service.IAnkiService) IAnkiController {
	return &ankiController{
		ankiService: ankiService,
	}
}

func (c *ankiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/anki")
	h.Get("test-connection", c.TestConnection)
	h.Get("decks", c.Decks)
	h.Post("decks", c.CreateDeck)
	h.Get("models", c.Models)
	h.Get("models/:name/fields", c.ModelFields)
}

func (c *ankiController) TestConnection(ctx *fiber.Ctx) error {
	res := c.ankiService.TestConnection(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Connection checked", res))
}

func (c *ankiController) Decks(ctx *fiber.Ctx) error {
	res, err := c.ankiService.Decks(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get decks", res))
}

func (c *ankiController) CreateDeck(ctx *fiber.Ctx) error {
	var req dto.CreateDeckRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ankiService.CreateDeck(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create deck", res))
}

func (c *ankiController) Models(ctx *fiber.Ctx) error {
	res, err := c.ankiService.Models(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get models", res))
}

func (c *ankiController) ModelFields(ctx *fiber.Ctx) error {
	name, err := unescapeParam(ctx, "name")
	if err != nil {
		return err
	}

	res, err := c.ankiService.ModelFields(ctx.Context(), name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get model fields", res))
}
