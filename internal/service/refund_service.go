package service

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/mapper"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRefundService interface {
	GetByOrder(ctx context.Context, userId uuid.UUID, role entity.UserRole, orderId uuid.UUID) (*dto.RefundResponse, error)
}

// refundService is the party-facing read side of the refund ledger; all
// writes go through the admin payout processor and the reconciler.
type refundService struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.RefundMapper
}

func NewRefundService(uowFactory unitofwork.RepositoryFactory) IRefundService {
	return &refundService{
		uowFactory: uowFactory,
		mapper:     mapper.NewRefundMapper(),
	}
}

func (s *refundService) GetByOrder(ctx context.Context, userId uuid.UUID, role entity.UserRole, orderId uuid.UUID) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if role != entity.UserRoleAdmin {
		order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NotFound("order", "unknown order id")
		}
		if order.CustomerID != userId && order.ProviderID != userId {
			return nil, apperror.Unauthorized("order", "not a party to this order")
		}
	}

	refund, err := uow.DepositRefundRepository().FindOneByOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("deposit_refund", "no refund ledger entry for this order")
	}
	return s.mapper.ToResponse(refund), nil
}
