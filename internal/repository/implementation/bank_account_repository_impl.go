package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bankAccountRepositoryImpl struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) contract.BankAccountRepository {
	return &bankAccountRepositoryImpl{db: db}
}

func (r *bankAccountRepositoryImpl) Exists(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BankAccount{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bankAccountRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	var ma model.BankAccount
	if err := r.db.WithContext(ctx).First(&ma, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.BankAccount{
		ID:            ma.ID,
		OwnerID:       ma.OwnerID,
		BankName:      ma.BankName,
		AccountNumber: ma.AccountNumber,
		AccountHolder: ma.AccountHolder,
		CreatedAt:     ma.CreatedAt,
	}, nil
}
