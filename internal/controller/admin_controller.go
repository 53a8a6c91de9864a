package controller

import (
	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/serverutils"
	"github.com/daohd2003/FRECS-sub006/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDisputeQueue(ctx *fiber.Ctx) error
	ResolveDispute(ctx *fiber.Ctx) error
	GetResolution(ctx *fiber.Ctx) error
	GetRefunds(ctx *fiber.Ctx) error
	GetRefund(ctx *fiber.Ctx) error
	ProcessPayout(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole("admin"))
	h.Get("disputes", c.GetDisputeQueue)
	h.Post("violations/:id/resolve", c.ResolveDispute)
	h.Get("violations/:id/resolution", c.GetResolution)
	h.Get("refunds", c.GetRefunds)
	h.Get("refunds/:id", c.GetRefund)
	h.Post("refunds/:id/payout", c.ProcessPayout)
}

func (c *adminController) GetDisputeQueue(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	res, err := c.adminService.GetDisputeQueue(ctx.Context(), page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dispute queue", res))
}

func (c *adminController) ResolveDispute(ctx *fiber.Ctx) error {
	adminId, _ := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	var req dto.ResolveDisputeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("resolution", "body", "malformed request body")
	}
	req.ViolationId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.ResolveDispute(ctx.Context(), adminId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Dispute resolved", res))
}

func (c *adminController) GetResolution(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	res, err := c.adminService.GetResolution(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get resolution", res))
}

func (c *adminController) GetRefunds(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)
	status := ctx.Query("status")

	res, err := c.adminService.GetRefunds(ctx.Context(), page, limit, status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get refunds", res))
}

func (c *adminController) GetRefund(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("deposit_refund", "id", "invalid refund id")
	}

	res, err := c.adminService.GetRefund(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get refund", res))
}

func (c *adminController) ProcessPayout(ctx *fiber.Ctx) error {
	adminId, _ := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("deposit_refund", "id", "invalid refund id")
	}

	var req dto.ProcessPayoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("deposit_refund", "body", "malformed request body")
	}
	req.RefundId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.ProcessPayout(ctx.Context(), adminId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Refund payout processed", res))
}
