package controller

import (
	"monarch-crm-be/internal/dto"
	"monarch-crm-be/internal/pkg/serverutils"
	"monarch-crm-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	CycleStatus(ctx *fiber.Ctx) error
	ExecuteCampaign(ctx *fiber.Ctx) error
}

type leadController struct {
	leadService service.ILeadService
}

func NewLeadController(leadService service.ILeadService) ILeadController {
	return &leadController{
		leadService: leadService,
	}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lead/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get("stats", c.Stats)
	h.Get("priority", c.Priority)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Put(":id/cycle-status", c.CycleStatus)
	h.Post(":id/campaign", c.ExecuteCampaign)
	h.Delete(":id", c.Delete)
}

func (c *leadController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.leadService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create lead", res))
}

func (c *leadController) List(ctx *fiber.Ctx) error {
	search := ctx.Query("q")
	status := ctx.Query("status")

	res, err := c.leadService.List(ctx.Context(), search, status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list leads", res))
}

func (c *leadController) Stats(ctx *fiber.Ctx) error {
	res, err := c.leadService.Stats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *leadController) Priority(ctx *fiber.Ctx) error {
	res, err := c.leadService.Priority(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list priority leads", res))
}

func (c *leadController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	res, err := c.leadService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show lead", res))
}

func (c *leadController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	var req dto.UpdateLeadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.leadService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update lead", res))
}

func (c *leadController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	if err := c.leadService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete lead", nil))
}

func (c *leadController) CycleStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	res, err := c.leadService.CycleStatus(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cycle lead status", res))
}

func (c *leadController) ExecuteCampaign(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lead id")
	}

	var req dto.ExecuteCampaignRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.leadService.ExecuteCampaign(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute campaign", res))
}
