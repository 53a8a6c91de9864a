package dto

import (
	"time"

	"github.com/google/uuid"
)

type RefundResponse struct {
	Id            uuid.UUID  `json:"id"`
	OrderId       uuid.UUID  `json:"order_id"`
	DepositAmount float64    `json:"deposit_amount"`
	PenaltyAmount float64    `json:"penalty_amount"`
	RefundAmount  float64    `json:"refund_amount"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	ExternalRef   string     `json:"external_ref,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ProcessPayoutRequest struct {
	RefundId              uuid.UUID
	Approve               bool      `json:"approve"`
	BankAccountId         uuid.UUID `json:"bank_account_id" validate:"required_if=Approve true"`
	ExternalTransactionId string    `json:"external_transaction_id" validate:"omitempty,max=100"`
	Notes                 string    `json:"notes" validate:"omitempty,max=500"`
}

type ProcessPayoutResponse struct {
	Id          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	ExternalRef string    `json:"external_ref,omitempty"`
}

type ListRefundsResponse struct {
	Refunds []RefundResponse `json:"refunds"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}
