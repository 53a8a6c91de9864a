package unitofwork

import (
	"context"
	"fmt"

	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // The active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) OrderRepository() contract.OrderRepository {
	return implementation.NewOrderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ViolationRepository() contract.ViolationRepository {
	return implementation.NewViolationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ResolutionRepository() contract.ResolutionRepository {
	return implementation.NewResolutionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DepositRefundRepository() contract.DepositRefundRepository {
	return implementation.NewDepositRefundRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DisputeMessageRepository() contract.DisputeMessageRepository {
	return implementation.NewDisputeMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BankAccountRepository() contract.BankAccountRepository {
	return implementation.NewBankAccountRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}
