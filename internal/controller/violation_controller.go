package controller

import (
	"encoding/json"
	"fmt"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/serverutils"
	"github.com/daohd2003/FRECS-sub006/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IViolationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Resubmit(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListByOrder(ctx *fiber.Ctx) error
}

type violationController struct {
	violationService service.IViolationService
}

func NewViolationController(violationService service.IViolationService) IViolationController {
	return &violationController{
		violationService: violationService,
	}
}

func (c *violationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/violation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("orders/:orderId/violations", c.Create)
	h.Get("orders/:orderId/violations", c.ListByOrder)
	h.Get("violations/:id", c.Show)
	h.Put("violations/:id/resubmit", c.Resubmit)
}

// Create expects multipart form data: a "violations" field holding the JSON
// batch, plus optional "evidence_<i>" file fields grouped per violation.
func (c *violationController) Create(ctx *fiber.Ctx) error {
	userId, _ := currentUser(ctx)

	orderId, err := uuid.Parse(ctx.Params("orderId"))
	if err != nil {
		return apperror.Validation("order", "id", "invalid order id")
	}

	payload := ctx.FormValue("violations")
	if payload == "" {
		return apperror.Validation("violation", "violations", "missing violations payload")
	}

	var req dto.CreateViolationsRequest
	if err := json.Unmarshal([]byte(payload), &req.Violations); err != nil {
		return apperror.Validation("violation", "violations", "malformed violations payload")
	}
	req.OrderId = orderId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		req.Evidence = make([][]dto.EvidenceUpload, len(req.Violations))
		for i := range req.Violations {
			for _, fh := range form.File[fmt.Sprintf("evidence_%d", i)] {
				f, err := fh.Open()
				if err != nil {
					return apperror.Storage("evidence", "failed to read upload", err)
				}
				defer f.Close()
				req.Evidence[i] = append(req.Evidence[i], dto.EvidenceUpload{
					Filename: fh.Filename,
					Content:  f,
				})
			}
		}
	}

	res, err := c.violationService.CreateViolations(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Violations reported", res))
}

// Resubmit expects multipart form data: a "violation" JSON field plus
// optional "evidence" file fields.
func (c *violationController) Resubmit(ctx *fiber.Ctx) error {
	userId, _ := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	payload := ctx.FormValue("violation")
	if payload == "" {
		return apperror.Validation("violation", "violation", "missing violation payload")
	}

	var req dto.ResubmitViolationRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return apperror.Validation("violation", "violation", "malformed violation payload")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["evidence"] {
			f, err := fh.Open()
			if err != nil {
				return apperror.Storage("evidence", "failed to read upload", err)
			}
			defer f.Close()
			req.Evidence = append(req.Evidence, dto.EvidenceUpload{
				Filename: fh.Filename,
				Content:  f,
			})
		}
	}

	res, err := c.violationService.ResubmitViolation(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Violation resubmitted", res))
}

func (c *violationController) Show(ctx *fiber.Ctx) error {
	userId, role := currentUser(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.Validation("violation", "id", "invalid violation id")
	}

	res, err := c.violationService.Show(ctx.Context(), userId, role, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get violation", res))
}

func (c *violationController) ListByOrder(ctx *fiber.Ctx) error {
	userId, role := currentUser(ctx)

	orderId, err := uuid.Parse(ctx.Params("orderId"))
	if err != nil {
		return apperror.Validation("order", "id", "invalid order id")
	}

	res, err := c.violationService.ListByOrder(ctx.Context(), userId, role, orderId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get violations", res))
}
