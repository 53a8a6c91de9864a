// Package orderstatus reflects violation ledger state back onto the owning
// order. The status is derived, never patched incrementally: every call
// re-reads the full violation set inside the caller's transaction so two
// violations resolving close together cannot leave the order stale.
package orderstatus

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Recompute scans all violations of the order and moves the order status
// accordingly:
//
//	any violation open (PENDING / CUSTOMER_REJECTED) -> returned_with_issue
//	all violations closed (accepted or resolved)     -> returned
//
// Orders outside the return-inspection window are left untouched. Returns
// the status the order holds after the call.
func Recompute(ctx context.Context, uow unitofwork.UnitOfWork, orderID uuid.UUID) (entity.OrderStatus, error) {
	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderID})
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", nil
	}

	switch order.Status {
	case entity.OrderStatusReturning, entity.OrderStatusReturnedWithIssue, entity.OrderStatusReturned:
		// recompute applies
	default:
		return order.Status, nil
	}

	violations, err := uow.ViolationRepository().FindAll(ctx, specification.ByOrder{OrderID: orderID})
	if err != nil {
		return "", err
	}
	if len(violations) == 0 {
		return order.Status, nil
	}

	next := entity.OrderStatusReturned
	for _, v := range violations {
		if v.Open() {
			next = entity.OrderStatusReturnedWithIssue
			break
		}
	}

	if next == order.Status {
		return order.Status, nil
	}
	if err := uow.OrderRepository().UpdateStatus(ctx, orderID, next); err != nil {
		return "", err
	}
	return next, nil
}
