package contract

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
)

type DisputeMessageRepository interface {
	Create(ctx context.Context, message *entity.DisputeMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DisputeMessage, error)
}
