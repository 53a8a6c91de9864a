package controller

import (
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/serverutils"
	"github.com/daohd2003/FRECS-sub006/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRefundController interface {
	RegisterRoutes(r fiber.Router)
	ShowByOrder(ctx *fiber.Ctx) error
}

type refundController struct {
	refundService service.IRefundService
}

func NewRefundController(refundService service.IRefundService) IRefundController {
	return &refundController{
		refundService: refundService,
	}
}

func (c *refundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/refund/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("orders/:orderId/refund", c.ShowByOrder)
}

func (c *refundController) ShowByOrder(ctx *fiber.Ctx) error {
	userId, role := currentUser(ctx)

	orderId, err := uuid.Parse(ctx.Params("orderId"))
	if err != nil {
		return apperror.Validation("order", "id", "invalid order id")
	}

	res, err := c.refundService.GetByOrder(ctx.Context(), userId, role, orderId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get refund", res))
}
