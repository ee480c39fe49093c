package controller

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/serverutils"
	"ankibridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBatchController interface {
	RegisterRoutes(r fiber.Router)
	Stage(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
	SetChecked(ctx *fiber.Ctx) error
	SelectAll(ctx *fiber.Ctx) error
	ForceInclude(ctx *fiber.Ctx) error
	EditFields(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type batchController struct {
	batchService service.IBatchService
}

func NewBatchController(batchService service.IBatchService) IBatchController {
	return &batchController{
		batchService: batchService,
	}
}

func (c *batchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/batch")
	h.Post("", c.Stage)
	h.Get(":id", c.Session)
	h.Put(":id/checked", c.SelectAll)
	h.Put(":id/items/:index/checked", c.SetChecked)
	h.Post(":id/items/:index/force", c.ForceInclude)
	h.Put(":id/items/:index/fields", c.EditFields)
	h.Post(":id/submit", c.Submit)
}

func (c *batchController) Stage(ctx *fiber.Ctx) error {
	var req dto.StageBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.batchService.Stage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Batch staged", res))
}

func (c *batchController) Session(ctx *fiber.Ctx) error {
	res, err := c.batchService.Session(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get batch session", res))
}

func (c *batchController) SetChecked(ctx *fiber.Ctx) error {
	index, err := intParam(ctx, "index")
	if err != nil {
		return err
	}

	var req dto.SetCheckedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.batchService.SetChecked(ctx.Params("id"), index, *req.Checked)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Item updated", res))
}

func (c *batchController) SelectAll(ctx *fiber.Ctx) error {
	var req dto.SelectAllRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.batchService.SelectAll(ctx.Params("id"), *req.Checked)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *batchController) ForceInclude(ctx *fiber.Ctx) error {
	index, err := intParam(ctx, "index")
	if err != nil {
		return err
	}

	res, err := c.batchService.ForceInclude(ctx.Params("id"), index)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Item updated", res))
}

func (c *batchController) EditFields(ctx *fiber.Ctx) error {
	index, err := intParam(ctx, "index")
	if err != nil {
		return err
	}

	var req dto.EditFieldsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.batchService.EditFields(ctx.Params("id"), index, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Fields updated", res))
}

func (c *batchController) Submit(ctx *fiber.Ctx) error {
	res, err := c.batchService.Submit(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Batch submitted", res))
}
