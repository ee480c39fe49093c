package controller

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/serverutils"
	"ankibridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICardController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
}

type cardController struct {
	cardService service.ICardService
}

func NewCardController(cardService service.ICardService) ICardController {
	return &cardController{
		cardService: cardService,
	}
}

func (c *cardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cards")
	h.Post("generate", c.Generate)
	h.Post("", c.Add)
}

func (c *cardController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.cardService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate card", res))
}

func (c *cardController) Add(ctx *fiber.Ctx) error {
	var req dto.AddCardRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.cardService.Add(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add card", res))
}
