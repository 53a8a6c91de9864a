package service

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/mapper"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"
	adminPayout "github.com/daohd2003/FRECS-sub006/pkg/admin/payout"
	"github.com/daohd2003/FRECS-sub006/pkg/admin/resolution"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDisputeQueue(ctx context.Context, page, limit int) (*dto.ListDisputeQueueResponse, error)
	ResolveDispute(ctx context.Context, adminId uuid.UUID, req *dto.ResolveDisputeRequest) (*dto.ResolutionResponse, error)
	GetResolution(ctx context.Context, violationId uuid.UUID) (*dto.ResolutionResponse, error)
	GetRefunds(ctx context.Context, page, limit int, status string) (*dto.ListRefundsResponse, error)
	GetRefund(ctx context.Context, id uuid.UUID) (*dto.RefundResponse, error)
	ProcessPayout(ctx context.Context, adminId uuid.UUID, req *dto.ProcessPayoutRequest) (*dto.ProcessPayoutResponse, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Domain Components
	resolutionEngine *resolution.Engine
	payoutProcessor  *adminPayout.Processor

	violationMapper  *mapper.ViolationMapper
	resolutionMapper *mapper.ResolutionMapper
	refundMapper     *mapper.RefundMapper
	disputeMapper    *mapper.DisputeMapper
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	resolutionEngine *resolution.Engine,
	payoutProcessor *adminPayout.Processor,
) IAdminService {
	return &adminService{
		uowFactory:       uowFactory,
		logger:           logger,
		resolutionEngine: resolutionEngine,
		payoutProcessor:  payoutProcessor,
		violationMapper:  mapper.NewViolationMapper(),
		resolutionMapper: mapper.NewResolutionMapper(),
		refundMapper:     mapper.NewRefundMapper(),
		disputeMapper:    mapper.NewDisputeMapper(),
	}
}

// GetDisputeQueue lists escalated violations waiting for a ruling, each with
// its message thread so the admin reviews both positions in one screen.
func (s *adminService) GetDisputeQueue(ctx context.Context, page, limit int) (*dto.ListDisputeQueueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	violations, err := s.resolutionEngine.Queue(ctx, uow, page, limit)
	if err != nil {
		return nil, err
	}

	disputes := make([]dto.DisputeQueueItem, 0, len(violations))
	for _, v := range violations {
		msgs, err := uow.DisputeMessageRepository().FindAll(ctx,
			specification.ByViolation{ViolationID: v.ID},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, err
		}
		disputes = append(disputes, dto.DisputeQueueItem{
			Violation: *s.violationMapper.ToResponse(v),
			Messages:  s.disputeMapper.ToMessageResponseList(msgs),
		})
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return &dto.ListDisputeQueueResponse{Disputes: disputes, Page: page, Limit: limit}, nil
}

func (s *adminService) ResolveDispute(ctx context.Context, adminId uuid.UUID, req *dto.ResolveDisputeRequest) (*dto.ResolutionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	res, err := s.resolutionEngine.Resolve(ctx, uow, resolution.ResolveCommand{
		ViolationId:        req.ViolationId,
		AdminId:            adminId,
		Type:               entity.ResolutionType(req.ResolutionType),
		FineAmount:         req.FineAmount,
		CompensationAmount: req.CompensationAmount,
		Reason:             req.Reason,
	})
	if err != nil {
		return nil, err
	}
	return s.resolutionMapper.ToResponse(res), nil
}

func (s *adminService) GetResolution(ctx context.Context, violationId uuid.UUID) (*dto.ResolutionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	res, err := uow.ResolutionRepository().FindOneByViolation(ctx, violationId)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, apperror.NotFound("resolution", "no resolution for this violation")
	}
	return s.resolutionMapper.ToResponse(res), nil
}

func (s *adminService) GetRefunds(ctx context.Context, page, limit int, status string) (*dto.ListRefundsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	refunds, err := s.payoutProcessor.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return &dto.ListRefundsResponse{
		Refunds: s.refundMapper.ToResponseList(refunds),
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *adminService) GetRefund(ctx context.Context, id uuid.UUID) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	refund, err := uow.DepositRefundRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("deposit_refund", "unknown refund id")
	}
	return s.refundMapper.ToResponse(refund), nil
}

func (s *adminService) ProcessPayout(ctx context.Context, adminId uuid.UUID, req *dto.ProcessPayoutRequest) (*dto.ProcessPayoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	refund, err := s.payoutProcessor.Process(ctx, uow, adminPayout.ProcessCommand{
		RefundId:              req.RefundId,
		AdminId:               adminId,
		Approve:               req.Approve,
		BankAccountId:         req.BankAccountId,
		ExternalTransactionId: req.ExternalTransactionId,
		Notes:                 req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProcessPayoutResponse{
		Id:          refund.ID,
		Status:      string(refund.Status),
		ExternalRef: refund.ExternalTransactionID,
	}, nil
}
