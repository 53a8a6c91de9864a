package unitofwork

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical transaction. Every
// command handler in the dispute core runs its writes between Begin and
// Commit so a reader never observes a resolved violation without its
// matching refund ledger entry.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	OrderRepository() contract.OrderRepository
	ViolationRepository() contract.ViolationRepository
	ResolutionRepository() contract.ResolutionRepository
	DepositRefundRepository() contract.DepositRefundRepository
	DisputeMessageRepository() contract.DisputeMessageRepository
	BankAccountRepository() contract.BankAccountRepository
	UserRepository() contract.UserRepository
}
