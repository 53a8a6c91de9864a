package controller

import (
	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/serverutils"
	"github.com/daohd2003/FRECS-sub006/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDisputeController interface {
	RegisterRoutes(r fiber.Router)
	Respond(ctx *fiber.Ctx) error
	Escalate(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
}

type disputeController struct {
	disputeService service.IDisputeService
}

func NewDisputeController(disputeService service.IDisputeService) IDisputeController {
	return &disputeController{
		disputeService: disputeService,
	}
}

func (c *disputeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dispute/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("violations/:id/response", c.Respond)
	h.Post("violations/:id/escalate", c.Escalate)
	h.Post("violations/:id/messages", c.PostMessage)
	h.Get("violations/:id/messages", c.ListMessages)
}

func (c *disputeController) Respond(ctx *fiber.Ctx) error {
	userId, _ := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	var req dto.CustomerRespondRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("violation", "body", "malformed request body")
	}
	req.ViolationId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.disputeService.CustomerRespond(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Response recorded", res))
}

func (c *disputeController) Escalate(ctx *fiber.Ctx) error {
	userId, role := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	var req dto.EscalateDisputeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("violation", "body", "malformed request body")
	}
	req.ViolationId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.disputeService.Escalate(ctx.Context(), userId, role, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Dispute escalated", res))
}

func (c *disputeController) PostMessage(ctx *fiber.Ctx) error {
	userId, role := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	var req dto.DisputeMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("violation", "body", "malformed request body")
	}
	req.ViolationId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.disputeService.AppendMessage(ctx.Context(), userId, role, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message posted", res))
}

func (c *disputeController) ListMessages(ctx *fiber.Ctx) error {
	userId, role := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	res, err := c.disputeService.ListMessages(ctx.Context(), userId, role, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}
