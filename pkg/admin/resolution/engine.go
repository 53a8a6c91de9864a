package resolution

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/orderstatus"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	"github.com/daohd2003/FRECS-sub006/pkg/deposit"

	"github.com/google/uuid"
)

// ResolveCommand is the admin's ruling on an escalated violation.
type ResolveCommand struct {
	ViolationId        uuid.UUID
	AdminId            uuid.UUID
	Type               entity.ResolutionType
	FineAmount         float64
	CompensationAmount float64
	Reason             string
}

// Engine executes admin rulings: it closes the violation, writes the
// immutable resolution record, settles the refund ledger, and re-derives
// the order status, all inside one transaction.
type Engine struct {
	reconciler *deposit.Reconciler
	logger     logger.ILogger
	publisher  adminEvents.Publisher
}

func NewEngine(reconciler *deposit.Reconciler, logger logger.ILogger, publisher adminEvents.Publisher) *Engine {
	return &Engine{
		reconciler: reconciler,
		logger:     logger,
		publisher:  publisher,
	}
}

// applyRejectClaim voids the provider's claim: no fine, no compensation,
// the penalty comes off the ledger entirely.
func applyRejectClaim(v *entity.RentalViolation, cmd ResolveCommand) (fine, compensation float64) {
	return 0, 0
}

// applyUpholdClaim confirms the claim as filed. The provider's original
// penalty stands; any amounts the admin typed in are ignored.
func applyUpholdClaim(v *entity.RentalViolation, cmd ResolveCommand) (fine, compensation float64) {
	return v.PenaltyAmount, v.PenaltyAmount
}

// applyCompromise takes the admin's amounts verbatim, except the fine is
// capped at the disputed item's deposit so the ruling can never charge the
// customer more than they put down for that item.
func applyCompromise(v *entity.RentalViolation, cmd ResolveCommand, itemDeposit float64) (fine, compensation float64) {
	fine = cmd.FineAmount
	if fine > itemDeposit {
		fine = itemDeposit
	}
	return fine, cmd.CompensationAmount
}

func (e *Engine) Resolve(ctx context.Context, uow unitofwork.UnitOfWork, cmd ResolveCommand) (*entity.IssueResolution, error) {
	if !cmd.Type.Valid() {
		return nil, apperror.Validation("resolution", "resolution_type", "unknown resolution type")
	}
	if strings.TrimSpace(cmd.Reason) == "" {
		return nil, apperror.Validation("resolution", "reason", "a ruling must state its reason")
	}

	violation, err := uow.ViolationRepository().FindOne(ctx, specification.ByID{ID: cmd.ViolationId})
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, apperror.NotFound("violation", "unknown violation id")
	}
	if violation.Status != entity.ViolationStatusCustomerRejected {
		return nil, apperror.InvalidState("violation", "only escalated disputes can be resolved")
	}

	existing, err := uow.ResolutionRepository().FindOneByViolation(ctx, violation.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.InvalidState("resolution", "violation already has a resolution")
	}

	order, err := uow.OrderRepository().FindOneWithItems(ctx, violation.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}

	var fine, compensation float64
	switch cmd.Type {
	case entity.ResolutionTypeRejectClaim:
		fine, compensation = applyRejectClaim(violation, cmd)
	case entity.ResolutionTypeUpholdClaim:
		fine, compensation = applyUpholdClaim(violation, cmd)
	case entity.ResolutionTypeCompromise:
		var itemDeposit float64
		if item := order.Item(violation.OrderItemID); item != nil {
			itemDeposit = item.DepositPerUnit * float64(item.Quantity)
		}
		fine, compensation = applyCompromise(violation, cmd, itemDeposit)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	violation.Status = entity.ViolationStatusResolved
	violation.PenaltyAmount = fine
	if err := uow.ViolationRepository().UpdateGuarded(ctx, violation); err != nil {
		return nil, err
	}

	now := time.Now()
	resolution := &entity.IssueResolution{
		ID:                         uuid.New(),
		ViolationID:                violation.ID,
		Type:                       cmd.Type,
		CustomerFineAmount:         fine,
		ProviderCompensationAmount: compensation,
		Reason:                     cmd.Reason,
		Status:                     entity.ResolutionStatusCompleted,
		ProcessedByAdminID:         &cmd.AdminId,
		ProcessedAt:                &now,
		CreatedAt:                  now,
	}
	if err := uow.ResolutionRepository().Create(ctx, resolution); err != nil {
		return nil, err
	}

	note := fmt.Sprintf("violation %s resolved as %s", violation.ID, cmd.Type)
	refund, refundCreated, err := e.reconciler.Reconcile(ctx, uow, violation.OrderID, fine, note)
	if err != nil {
		return nil, err
	}
	if _, err := orderstatus.Recompute(ctx, uow, violation.OrderID); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	e.logger.Info("RESOLUTION", "Dispute resolved", map[string]interface{}{
		"violationId":  violation.ID.String(),
		"type":         string(cmd.Type),
		"fine":         fine,
		"compensation": compensation,
	})
	e.publisher.PublishIssueResolved(ctx, violation.ID, order.ID, order.CustomerID, order.ProviderID, string(cmd.Type), fine, compensation)
	if refundCreated {
		e.publisher.PublishRefundInitiated(ctx, refund.ID, order.ID, order.CustomerID, refund.RefundAmount)
	}

	return resolution, nil
}

// Queue lists escalated disputes waiting for an admin ruling, newest first.
func (e *Engine) Queue(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int) ([]*entity.RentalViolation, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return uow.ViolationRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.ViolationStatusCustomerRejected)},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
}
