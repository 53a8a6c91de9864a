package payout

import "context"

// Disbursement describes a deposit refund being pushed to the customer's
// bank account.
type Disbursement struct {
	RefundID        string
	Amount          float64
	BeneficiaryName string
	AccountNumber   string
	BankCode        string
	Email           string
	Notes           string
}

// Gateway sends money out through an external disbursement rail. It returns
// the rail's reference number for reconciliation. A nil Gateway in the
// processor means refunds are marked completed without an external transfer
// (manual settlement).
type Gateway interface {
	Disburse(ctx context.Context, d Disbursement) (string, error)
}
