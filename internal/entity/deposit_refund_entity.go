package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus is the transaction lifecycle of a deposit refund.
type RefundStatus string

const (
	RefundStatusInitiated RefundStatus = "initiated"
	RefundStatusCompleted RefundStatus = "completed"
	RefundStatusFailed    RefundStatus = "failed"
)

// DepositRefund is the money-movement ledger entry for one order's deposit.
// At most one active row per order; created lazily on the first resolution
// and updated in place on later ones.
type DepositRefund struct {
	ID      uuid.UUID
	OrderID uuid.UUID

	OriginalDepositAmount float64
	TotalPenaltyAmount    float64
	RefundAmount          float64

	Status              RefundStatus
	RefundBankAccountID *uuid.UUID
	Notes               string

	ProcessedByAdminID    *uuid.UUID
	ProcessedAt           *time.Time
	ExternalTransactionID string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recompute re-derives RefundAmount from the deposit and penalty totals.
// Holds the ledger invariant: refund = max(0, deposit - penalty).
func (r *DepositRefund) Recompute() {
	amount := r.OriginalDepositAmount - r.TotalPenaltyAmount
	if amount < 0 {
		amount = 0
	}
	r.RefundAmount = amount
}
