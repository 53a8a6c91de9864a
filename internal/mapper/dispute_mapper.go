package mapper

import (
	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
)

type DisputeMapper struct{}

func NewDisputeMapper() *DisputeMapper {
	return &DisputeMapper{}
}

func (m *DisputeMapper) ToMessageResponse(msg *entity.DisputeMessage) *dto.DisputeMessageResponse {
	if msg == nil {
		return nil
	}

	return &dto.DisputeMessageResponse{
		Id:         msg.ID,
		SenderId:   msg.SenderID,
		SenderRole: string(msg.SenderRole),
		Message:    msg.Body,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *DisputeMapper) ToMessageResponseList(msgs []*entity.DisputeMessage) []dto.DisputeMessageResponse {
	out := make([]dto.DisputeMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, *m.ToMessageResponse(msg))
	}
	return out
}
