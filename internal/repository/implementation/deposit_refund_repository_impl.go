package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type depositRefundRepositoryImpl struct {
	db *gorm.DB
}

func NewDepositRefundRepository(db *gorm.DB) contract.DepositRefundRepository {
	return &depositRefundRepositoryImpl{db: db}
}

func (r *depositRefundRepositoryImpl) Create(ctx context.Context, refund *entity.DepositRefund) error {
	modelRefund := r.mapToModel(refund)
	if err := r.db.WithContext(ctx).Create(modelRefund).Error; err != nil {
		return err
	}
	refund.ID = modelRefund.ID
	refund.CreatedAt = modelRefund.CreatedAt
	refund.UpdatedAt = modelRefund.UpdatedAt
	return nil
}

func (r *depositRefundRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DepositRefund, error) {
	var modelRefund model.DepositRefund
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelRefund).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelRefund), nil
}

func (r *depositRefundRepositoryImpl) FindOneByOrder(ctx context.Context, orderID uuid.UUID) (*entity.DepositRefund, error) {
	return r.FindOne(ctx, specification.ByOrder{OrderID: orderID})
}

func (r *depositRefundRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DepositRefund, error) {
	var modelRefunds []*model.DepositRefund
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelRefunds).Error; err != nil {
		return nil, err
	}

	var refunds []*entity.DepositRefund
	for _, mr := range modelRefunds {
		refunds = append(refunds, r.mapToEntity(mr))
	}

	return refunds, nil
}

func (r *depositRefundRepositoryImpl) UpdateGuarded(ctx context.Context, refund *entity.DepositRefund) error {
	res := r.db.WithContext(ctx).Model(&model.DepositRefund{}).
		Where("id = ? AND version = ?", refund.ID, refund.Version).
		Updates(map[string]interface{}{
			"total_penalty_amount":    refund.TotalPenaltyAmount,
			"refund_amount":           refund.RefundAmount,
			"status":                  string(refund.Status),
			"refund_bank_account_id":  refund.RefundBankAccountID,
			"notes":                   refund.Notes,
			"processed_by_admin_id":   refund.ProcessedByAdminID,
			"processed_at":            refund.ProcessedAt,
			"external_transaction_id": refund.ExternalTransactionID,
			"version":                 refund.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.InvalidState("deposit_refund", "refund was modified concurrently, please retry")
	}
	refund.Version++
	return nil
}

func (r *depositRefundRepositoryImpl) mapToModel(refund *entity.DepositRefund) *model.DepositRefund {
	return &model.DepositRefund{
		ID:                    refund.ID,
		OrderID:               refund.OrderID,
		OriginalDepositAmount: refund.OriginalDepositAmount,
		TotalPenaltyAmount:    refund.TotalPenaltyAmount,
		RefundAmount:          refund.RefundAmount,
		Status:                string(refund.Status),
		RefundBankAccountID:   refund.RefundBankAccountID,
		Notes:                 refund.Notes,
		ProcessedByAdminID:    refund.ProcessedByAdminID,
		ProcessedAt:           refund.ProcessedAt,
		ExternalTransactionID: refund.ExternalTransactionID,
		Version:               refund.Version,
	}
}

// mapToEntity converts model.DepositRefund to entity.DepositRefund
func (r *depositRefundRepositoryImpl) mapToEntity(mr *model.DepositRefund) *entity.DepositRefund {
	return &entity.DepositRefund{
		ID:                    mr.ID,
		OrderID:               mr.OrderID,
		OriginalDepositAmount: mr.OriginalDepositAmount,
		TotalPenaltyAmount:    mr.TotalPenaltyAmount,
		RefundAmount:          mr.RefundAmount,
		Status:                entity.RefundStatus(mr.Status),
		RefundBankAccountID:   mr.RefundBankAccountID,
		Notes:                 mr.Notes,
		ProcessedByAdminID:    mr.ProcessedByAdminID,
		ProcessedAt:           mr.ProcessedAt,
		ExternalTransactionID: mr.ExternalTransactionID,
		Version:               mr.Version,
		CreatedAt:             mr.CreatedAt,
		UpdatedAt:             mr.UpdatedAt,
	}
}
