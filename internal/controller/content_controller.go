package controller

import (
	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/pkg/serverutils"
	"monarch-crm-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	PersonalizeEmail(ctx *fiber.Ctx) error
	Insights(ctx *fiber.Ctx) error
	CallScript(ctx *fiber.Ctx) error
	GenerateWebsite(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
}

func NewContentController(contentService service.IContentService) IContentController {
	return &contentController{
		contentService: contentService,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Post(":id/personalize", c.PersonalizeEmail)
	h.Get(":id/insights", c.Insights)
	h.Post(":id/call-script", c.CallScript)
	h.Post(":id/website", c.GenerateWebsite)
}

func (c *contentController) PersonalizeEmail(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	var req dto.PersonalizeEmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.PersonalizeEmail(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success personalize email", res))
}

func (c *contentController) Insights(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	res, err := c.contentService.Insights(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze lead", res))
}

func (c *contentController) CallScript(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	res, err := c.contentService.CallScript(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate call script", res))
}

func (c *contentController) GenerateWebsite(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	var req dto.GenerateWebsiteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.contentService.GenerateWebsite(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate portfolio site", res))
}
