package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"gorm.io/gorm"
)

type disputeMessageRepositoryImpl struct {
	db *gorm.DB
}

func NewDisputeMessageRepository(db *gorm.DB) contract.DisputeMessageRepository {
	return &disputeMessageRepositoryImpl{db: db}
}

func (r *disputeMessageRepositoryImpl) Create(ctx context.Context, message *entity.DisputeMessage) error {
	modelMessage := &model.DisputeMessage{
		ID:          message.ID,
		ViolationID: message.ViolationID,
		SenderID:    message.SenderID,
		SenderRole:  string(message.SenderRole),
		Body:        message.Body,
	}
	if err := r.db.WithContext(ctx).Create(modelMessage).Error; err != nil {
		return err
	}
	message.ID = modelMessage.ID
	message.CreatedAt = modelMessage.CreatedAt
	return nil
}

func (r *disputeMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DisputeMessage, error) {
	var modelMessages []*model.DisputeMessage
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelMessages).Error; err != nil {
		return nil, err
	}

	var messages []*entity.DisputeMessage
	for _, mm := range modelMessages {
		messages = append(messages, &entity.DisputeMessage{
			ID:          mm.ID,
			ViolationID: mm.ViolationID,
			SenderID:    mm.SenderID,
			SenderRole:  entity.UserRole(mm.SenderRole),
			Body:        mm.Body,
			CreatedAt:   mm.CreatedAt,
		})
	}

	return messages, nil
}
