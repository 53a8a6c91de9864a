package mapper

import (
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
)

type ViolationMapper struct{}

func NewViolationMapper() *ViolationMapper {
	return &ViolationMapper{}
}

func (m *ViolationMapper) ToResponse(v *entity.RentalViolation) *dto.ViolationResponse {
	if v == nil {
		return nil
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		updatedAt = &t
	}

	evidence := make([]dto.EvidenceResponse, 0, len(v.Evidence))
	for _, e := range v.Evidence {
		evidence = append(evidence, dto.EvidenceResponse{
			Id:           e.ID,
			FileUrl:      e.URL,
			UploaderRole: string(e.UploaderRole),
			CreatedAt:    e.UploadedAt,
		})
	}

	return &dto.ViolationResponse{
		Id:                       v.ID,
		OrderId:                  v.OrderID,
		OrderItemId:              v.OrderItemID,
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
		Evidence:                 evidence,
		CreatedAt:                v.CreatedAt,
		UpdatedAt:                updatedAt,
	}
}

func (m *ViolationMapper) ToResponseList(violations []*entity.RentalViolation) []dto.ViolationResponse {
	out := make([]dto.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, *m.ToResponse(v))
	}
	return out
}
