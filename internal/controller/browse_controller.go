package controller

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/serverutils"
	"ankibridge-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBrowseController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Page(ctx *fiber.Ctx) error
	Select(ctx *fiber.Ctx) error
	Selection(ctx *fiber.Ctx) error
	UpdateNote(ctx *fiber.Ctx) error
	DeleteSelected(ctx *fiber.Ctx) error
}

type browseController struct {
	browseService service.IBrowseService
}

func NewBrowseController(browseService service.IBrowseService) IBrowseController {
	return &browseController{
		browseService: browseService,
	}
}

func (c *browseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/browse")
	h.Post("", c.Open)
	h.Get(":id/page/:page", c.Page)
	h.Put(":id/selection", c.Select)
	h.Get(":id/selection", c.Selection)
	h.Post(":id/delete", c.DeleteSelected)

	r.Put("/notes/:noteId", c.UpdateNote)
}

func (c *browseController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenBrowseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.browseService.Open(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Browse session opened", res))
}

func (c *browseController) Page(ctx *fiber.Ctx) error {
	page, err := intParam(ctx, "page")
	if err != nil {
		return err
	}

	res, err := c.browseService.Page(ctx.Context(), ctx.Params("id"), page)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get page", res))
}

func (c *browseController) Select(ctx *fiber.Ctx) error {
	var req dto.SelectNotesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.browseService.Select(ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Selection updated", res))
}

func (c *browseController) Selection(ctx *fiber.Ctx) error {
	res, err := c.browseService.Selection(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get selection", res))
}

func (c *browseController) UpdateNote(ctx *fiber.Ctx) error {
	noteID, err := int64Param(ctx, "noteId")
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.browseService.UpdateNote(ctx.Context(), noteID, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Note updated", nil))
}

func (c *browseController) DeleteSelected(ctx *fiber.Ctx) error {
	var req dto.DeleteSelectedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.browseService.DeleteSelected(ctx.Context(), ctx.Params("id"), req.Confirm)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notes deleted", res))
}
