package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"gorm.io/gorm"
)

type violationRepositoryImpl struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) contract.ViolationRepository {
	return &violationRepositoryImpl{db: db}
}

func (r *violationRepositoryImpl) Create(ctx context.Context, violation *entity.RentalViolation) error {
	modelViolation := r.mapToModel(violation)
	if err := r.db.WithContext(ctx).Create(modelViolation).Error; err != nil {
		return err
	}
	violation.ID = modelViolation.ID
	violation.CreatedAt = modelViolation.CreatedAt
	violation.UpdatedAt = modelViolation.UpdatedAt
	return nil
}

func (r *violationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RentalViolation, error) {
	var modelViolation model.RentalViolation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelViolation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelViolation), nil
}

func (r *violationRepositoryImpl) FindOneWithEvidence(ctx context.Context, specs ...specification.Specification) (*entity.RentalViolation, error) {
	var modelViolation model.RentalViolation
	query := r.db.WithContext(ctx).Preload("Evidence")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelViolation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelViolation), nil
}

func (r *violationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RentalViolation, error) {
	var modelViolations []*model.RentalViolation
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelViolations).Error; err != nil {
		return nil, err
	}

	var violations []*entity.RentalViolation
	for _, mv := range modelViolations {
		violations = append(violations, r.mapToEntity(mv))
	}

	return violations, nil
}

// UpdateGuarded persists the full mutable state of the violation, but only if
// nobody else bumped the version since it was read.
func (r *violationRepositoryImpl) UpdateGuarded(ctx context.Context, violation *entity.RentalViolation) error {
	res := r.db.WithContext(ctx).Model(&model.RentalViolation{}).
		Where("id = ? AND version = ?", violation.ID, violation.Version).
		Updates(map[string]interface{}{
			"description":                violation.Description,
			"damage_percentage":          violation.DamagePercentage,
			"penalty_percentage":         violation.PenaltyPercentage,
			"penalty_amount":             violation.PenaltyAmount,
			"status":                     string(violation.Status),
			"customer_notes":             violation.CustomerNotes,
			"customer_response_at":       violation.CustomerResponseAt,
			"provider_escalation_reason": violation.ProviderEscalationReason,
			"customer_escalation_reason": violation.CustomerEscalationReason,
			"version":                    violation.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.InvalidState("violation", "violation was modified concurrently, please retry")
	}
	violation.Version++
	return nil
}

func (r *violationRepositoryImpl) AddEvidence(ctx context.Context, evidence []entity.ViolationEvidence) error {
	if len(evidence) == 0 {
		return nil
	}
	modelEvidence := make([]model.ViolationEvidence, 0, len(evidence))
	for _, ev := range evidence {
		modelEvidence = append(modelEvidence, model.ViolationEvidence{
			ID:           ev.ID,
			ViolationID:  ev.ViolationID,
			URL:          ev.URL,
			UploaderRole: string(ev.UploaderRole),
			UploadedAt:   ev.UploadedAt,
		})
	}
	return r.db.WithContext(ctx).Create(&modelEvidence).Error
}

func (r *violationRepositoryImpl) mapToModel(v *entity.RentalViolation) *model.RentalViolation {
	return &model.RentalViolation{
		ID:                       v.ID,
		OrderID:                  v.OrderID,
		OrderItemID:              v.OrderItemID,
		Type:                     string(v.Type),
		Description:              v.Description,
		DamagePercentage:         v.DamagePercentage,
		PenaltyPercentage:        v.PenaltyPercentage,
		PenaltyAmount:            v.PenaltyAmount,
		Status:                   string(v.Status),
		CustomerNotes:            v.CustomerNotes,
		CustomerResponseAt:       v.CustomerResponseAt,
		ProviderEscalationReason: v.ProviderEscalationReason,
		CustomerEscalationReason: v.CustomerEscalationReason,
		Version:                  v.Version,
	}
}

// mapToEntity converts model.RentalViolation to entity.RentalViolation
func (r *violationRepositoryImpl) mapToEntity(mv *model.RentalViolation) *entity.RentalViolation {
	violation := &entity.RentalViolation{
		ID:                       mv.ID,
		OrderID:                  mv.OrderID,
		OrderItemID:              mv.OrderItemID,
		Type:                     entity.ViolationType(mv.Type),
		Description:              mv.Description,
		DamagePercentage:         mv.DamagePercentage,
		PenaltyPercentage:        mv.PenaltyPercentage,
		PenaltyAmount:            mv.PenaltyAmount,
		Status:                   entity.ViolationStatus(mv.Status),
		CustomerNotes:            mv.CustomerNotes,
		CustomerResponseAt:       mv.CustomerResponseAt,
		ProviderEscalationReason: mv.ProviderEscalationReason,
		CustomerEscalationReason: mv.CustomerEscalationReason,
		Version:                  mv.Version,
		CreatedAt:                mv.CreatedAt,
		UpdatedAt:                mv.UpdatedAt,
	}
	for _, ev := range mv.Evidence {
		violation.Evidence = append(violation.Evidence, entity.ViolationEvidence{
			ID:           ev.ID,
			ViolationID:  ev.ViolationID,
			URL:          ev.URL,
			UploaderRole: entity.UploaderRole(ev.UploaderRole),
			UploadedAt:   ev.UploadedAt,
		})
	}
	return violation
}
