package controller

import (
	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/pkg/serverutils"
	"rfx-retrieval-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IResearchController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Deep(ctx *fiber.Ctx) error
	ForProposal(ctx *fiber.Ctx) error
	Purge(ctx *fiber.Ctx) error
}

type researchController struct {
	researchService service.IResearchService
}

func NewResearchController(researchService service.IResearchService) IResearchController {
	return &researchController{
		researchService: researchService,
	}
}

func (c *researchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/research/v1")
	h.Post("", c.Query)
	h.Post("deep", c.Deep)
	h.Get("proposal/:id", c.ForProposal)
	h.Delete("expired", c.Purge)
}

func (c *researchController) Query(ctx *fiber.Ctx) error {
	var req dto.ResearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.GetOrFetch(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success research query", res))
}

func (c *researchController) Deep(ctx *fiber.Ctx) error {
	var req dto.DeepResearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.DeepResearch(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success deep research", res))
}

func (c *researchController) ForProposal(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid proposal id")
	}

	res, err := c.researchService.CachedForProposal(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list cached research", res))
}

func (c *researchController) Purge(ctx *fiber.Ctx) error {
	deleted, err := c.researchService.PurgeExpired(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success purge expired research", fiber.Map{
		"deleted": deleted,
	}))
}
