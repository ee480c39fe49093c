package controller

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/serverutils"
	"ankibridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInstructionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Set(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
}

type instructionController struct {
	instructionService service.IInstructionService
}

func NewInstructionController(instructionService service.IInstructionService) IInstructionController {
	return &instructionController{
		instructionService: instructionService,
	}
}

func (c *instructionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/instructions")
	h.Get("", c.List)
	h.Put("", c.Set)
	h.Delete(":model", c.Remove)
}

func (c *instructionController) List(ctx *fiber.Ctx) error {
	res := c.instructionService.List()
	return ctx.JSON(serverutils.SuccessResponse("Success get instructions", res))
}

func (c *instructionController) Set(ctx *fiber.Ctx) error {
	var req dto.SetInstructionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.instructionService.Set(&req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Instruction saved", nil))
}

func (c *instructionController) Remove(ctx *fiber.Ctx) error {
	model, err := unescapeParam(ctx, "model")
	if err != nil {
		return err
	}

	if err := c.instructionService.Remove(model); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Instruction removed", nil))
}
