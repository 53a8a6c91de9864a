package mapper

import (
	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
)

type ResolutionMapper struct{}

func NewResolutionMapper() *ResolutionMapper {
	return &ResolutionMapper{}
}

func (m *ResolutionMapper) ToResponse(r *entity.IssueResolution) *dto.ResolutionResponse {
	if r == nil {
		return nil
	}

	return &dto.ResolutionResponse{
		Id:                 r.ID,
		ViolationId:        r.ViolationID,
		ResolutionType:     string(r.Type),
		FineAmount:         r.CustomerFineAmount,
		CompensationAmount: r.ProviderCompensationAmount,
		Reason:             r.Reason,
		Status:             string(r.Status),
		ProcessedByAdminId: r.ProcessedByAdminID,
		ProcessedAt:        r.ProcessedAt,
		CreatedAt:          r.CreatedAt,
	}
}
