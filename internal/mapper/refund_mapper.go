package mapper

import (
	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
)

type RefundMapper struct{}

func NewRefundMapper() *RefundMapper {
	return &RefundMapper{}
}

func (m *RefundMapper) ToResponse(r *entity.DepositRefund) *dto.RefundResponse {
	if r == nil {
		return nil
	}

	return &dto.RefundResponse{
		Id:            r.ID,
		OrderId:       r.OrderID,
		DepositAmount: r.OriginalDepositAmount,
		PenaltyAmount: r.TotalPenaltyAmount,
		RefundAmount:  r.RefundAmount,
		Status:        string(r.Status),
		Notes:         r.Notes,
		ExternalRef:   r.ExternalTransactionID,
		ProcessedAt:   r.ProcessedAt,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *RefundMapper) ToResponseList(refunds []*entity.DepositRefund) []dto.RefundResponse {
	out := make([]dto.RefundResponse, 0, len(refunds))
	for _, r := range refunds {
		out = append(out, *m.ToResponse(r))
	}
	return out
}
