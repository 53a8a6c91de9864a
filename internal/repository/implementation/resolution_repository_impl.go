package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resolutionRepositoryImpl struct {
	db *gorm.DB
}

func NewResolutionRepository(db *gorm.DB) contract.ResolutionRepository {
	return &resolutionRepositoryImpl{db: db}
}

func (r *resolutionRepositoryImpl) Create(ctx context.Context, resolution *entity.IssueResolution) error {
	modelResolution := &model.IssueResolution{
		ID:                         resolution.ID,
		ViolationID:                resolution.ViolationID,
		Type:                       string(resolution.Type),
		CustomerFineAmount:         resolution.CustomerFineAmount,
		ProviderCompensationAmount: resolution.ProviderCompensationAmount,
		Reason:                     resolution.Reason,
		Status:                     string(resolution.Status),
		ProcessedByAdminID:         resolution.ProcessedByAdminID,
		ProcessedAt:                resolution.ProcessedAt,
	}
	if err := r.db.WithContext(ctx).Create(modelResolution).Error; err != nil {
		return err
	}
	resolution.ID = modelResolution.ID
	resolution.CreatedAt = modelResolution.CreatedAt
	return nil
}

func (r *resolutionRepositoryImpl) FindOneByViolation(ctx context.Context, violationID uuid.UUID) (*entity.IssueResolution, error) {
	var modelResolution model.IssueResolution
	err := r.db.WithContext(ctx).
		Where("violation_id = ?", violationID).
		First(&modelResolution).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.IssueResolution{
		ID:                         modelResolution.ID,
		ViolationID:                modelResolution.ViolationID,
		Type:                       entity.ResolutionType(modelResolution.Type),
		CustomerFineAmount:         modelResolution.CustomerFineAmount,
		ProviderCompensationAmount: modelResolution.ProviderCompensationAmount,
		Reason:                     modelResolution.Reason,
		Status:                     entity.ResolutionStatus(modelResolution.Status),
		ProcessedByAdminID:         modelResolution.ProcessedByAdminID,
		ProcessedAt:                modelResolution.ProcessedAt,
		CreatedAt:                  modelResolution.CreatedAt,
	}, nil
}
