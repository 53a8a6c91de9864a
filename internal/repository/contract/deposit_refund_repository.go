package contract

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"github.com/google/uuid"
)

type DepositRefundRepository interface {
	Create(ctx context.Context, refund *entity.DepositRefund) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DepositRefund, error)
	FindOneByOrder(ctx context.Context, orderID uuid.UUID) (*entity.DepositRefund, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DepositRefund, error)
	// UpdateGuarded writes the refund with an optimistic version check.
	UpdateGuarded(ctx context.Context, refund *entity.DepositRefund) error
}
