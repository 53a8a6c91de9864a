// Package deposit derives the DepositRefund ledger entry from dispute
// outcomes. One mutable refund row per order: created lazily on the first
// resolution, updated in place afterwards.
package deposit

import (
	"context"
	"fmt"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// AggregationStrategy decides how the penalty of a new resolution combines
// with the penalty already on the ledger. The original system overwrote
// (latest resolution wins); sum is the configurable alternative for orders
// accumulating several independent violations.
type AggregationStrategy string

const (
	AggregateOverwrite AggregationStrategy = "overwrite"
	AggregateSum       AggregationStrategy = "sum"
)

func ParseStrategy(s string) (AggregationStrategy, error) {
	switch AggregationStrategy(s) {
	case AggregateOverwrite, "":
		return AggregateOverwrite, nil
	case AggregateSum:
		return AggregateSum, nil
	}
	return "", fmt.Errorf("unknown penalty aggregation strategy %q", s)
}

// Reconciler maintains the refund = max(0, deposit - penalty) invariant.
type Reconciler struct {
	strategy AggregationStrategy
	logger   logger.ILogger
}

func NewReconciler(strategy AggregationStrategy, log logger.ILogger) *Reconciler {
	if strategy == "" {
		strategy = AggregateOverwrite
	}
	return &Reconciler{
		strategy: strategy,
		logger:   log,
	}
}

// Reconcile creates or updates the order's DepositRefund for one resolution
// event carrying penalty. Must run inside the caller's unit of work so the
// ledger commits atomically with the violation transition that caused it.
// The created flag reports whether this call opened the ledger entry, so
// callers can announce the refund once its transaction commits.
func (r *Reconciler) Reconcile(ctx context.Context, uow unitofwork.UnitOfWork, orderID uuid.UUID, penalty float64, notes string) (*entity.DepositRefund, bool, error) {
	if penalty < 0 {
		return nil, false, apperror.Validation("deposit_refund", "penalty", "penalty must not be negative")
	}

	refund, err := uow.DepositRefundRepository().FindOneByOrder(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	if refund == nil {
		order, err := uow.OrderRepository().FindOneWithItems(ctx, orderID)
		if err != nil {
			return nil, false, err
		}
		if order == nil {
			return nil, false, apperror.NotFound("order", "unknown order id")
		}

		refund = &entity.DepositRefund{
			ID:                    uuid.New(),
			OrderID:               orderID,
			OriginalDepositAmount: order.DepositTotal(),
			TotalPenaltyAmount:    penalty,
			Status:                entity.RefundStatusInitiated,
			Notes:                 stampNote(notes),
		}
		refund.Recompute()

		if err := uow.DepositRefundRepository().Create(ctx, refund); err != nil {
			return nil, false, err
		}
		r.logger.Info("DEPOSIT", "Refund ledger entry created", map[string]interface{}{
			"orderId":      orderID.String(),
			"deposit":      refund.OriginalDepositAmount,
			"penalty":      refund.TotalPenaltyAmount,
			"refundAmount": refund.RefundAmount,
		})
		return refund, true, nil
	}

	// Money already moved; later resolutions must not rewrite a settled ledger.
	if refund.Status != entity.RefundStatusInitiated {
		return nil, false, apperror.InvalidState("deposit_refund", "refund already processed for this order")
	}

	switch r.strategy {
	case AggregateSum:
		refund.TotalPenaltyAmount += penalty
	default:
		refund.TotalPenaltyAmount = penalty
	}
	refund.Recompute()
	if notes != "" {
		refund.Notes = appendNote(refund.Notes, notes)
	}

	if err := uow.DepositRefundRepository().UpdateGuarded(ctx, refund); err != nil {
		return nil, false, err
	}
	r.logger.Info("DEPOSIT", "Refund ledger entry updated", map[string]interface{}{
		"orderId":      orderID.String(),
		"strategy":     string(r.strategy),
		"penalty":      refund.TotalPenaltyAmount,
		"refundAmount": refund.RefundAmount,
	})
	return refund, false, nil
}

func stampNote(note string) string {
	if note == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", time.Now().Format(time.RFC3339), note)
}

// appendNote keeps earlier reconciliation notes instead of replacing them.
func appendNote(existing, note string) string {
	stamped := stampNote(note)
	if existing == "" {
		return stamped
	}
	return existing + "\n" + stamped
}
