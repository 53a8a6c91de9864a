package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/mapper"
	"github.com/daohd2003/FRECS-sub006/internal/orderstatus"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	"github.com/daohd2003/FRECS-sub006/pkg/deposit"

	"github.com/google/uuid"
)

type IDisputeService interface {
	CustomerRespond(ctx context.Context, customerId uuid.UUID, req *dto.CustomerRespondRequest) (*dto.CustomerRespondResponse, error)
	Escalate(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.EscalateDisputeRequest) (*dto.EscalateDisputeResponse, error)
	AppendMessage(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.DisputeMessageRequest) (*dto.DisputeMessageResponse, error)
	ListMessages(ctx context.Context, userId uuid.UUID, role entity.UserRole, violationId uuid.UUID) (*dto.ListDisputeMessagesResponse, error)
}

type disputeService struct {
	uowFactory     unitofwork.RepositoryFactory
	reconciler     *deposit.Reconciler
	eventPublisher adminEvents.Publisher
	mapper         *mapper.DisputeMapper
	logger         logger.ILogger
}

func NewDisputeService(
	uowFactory unitofwork.RepositoryFactory,
	reconciler *deposit.Reconciler,
	eventPublisher adminEvents.Publisher,
	logger logger.ILogger,
) IDisputeService {
	return &disputeService{
		uowFactory:     uowFactory,
		reconciler:     reconciler,
		eventPublisher: eventPublisher,
		mapper:         mapper.NewDisputeMapper(),
		logger:         logger,
	}
}

// CustomerRespond records the customer's accept/reject decision on a pending
// violation. Accepting settles the claim immediately: the penalty lands on
// the order's refund ledger and the order status is re-derived, all in the
// same transaction. Rejecting parks the violation for provider resubmission
// or admin review.
func (s *disputeService) CustomerRespond(ctx context.Context, customerId uuid.UUID, req *dto.CustomerRespondRequest) (*dto.CustomerRespondResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	violation, err := uow.ViolationRepository().FindOne(ctx, specification.ByID{ID: req.ViolationId})
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, apperror.NotFound("violation", "unknown violation id")
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: violation.OrderID})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}
	if order.CustomerID != customerId {
		return nil, apperror.Unauthorized("violation", "only the order's customer may respond")
	}
	if violation.Status != entity.ViolationStatusPending {
		return nil, apperror.InvalidState("violation", "violation has already been responded to")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	violation.CustomerNotes = req.Notes
	violation.CustomerResponseAt = &now

	accepted := req.Action == "accept"
	if accepted {
		violation.Status = entity.ViolationStatusCustomerAccepted
	} else {
		violation.Status = entity.ViolationStatusCustomerRejected
	}

	if err := uow.ViolationRepository().UpdateGuarded(ctx, violation); err != nil {
		return nil, err
	}

	var refund *entity.DepositRefund
	var refundCreated bool
	if accepted {
		note := fmt.Sprintf("violation %s accepted by customer", violation.ID)
		refund, refundCreated, err = s.reconciler.Reconcile(ctx, uow, violation.OrderID, violation.PenaltyAmount, note)
		if err != nil {
			return nil, err
		}
		if _, err := orderstatus.Recompute(ctx, uow, violation.OrderID); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("DISPUTE", "Customer responded to violation", map[string]interface{}{
		"violationId": violation.ID.String(),
		"accepted":    accepted,
	})
	s.eventPublisher.PublishCustomerResponded(ctx, violation.ID, violation.OrderID, order.ProviderID, accepted, req.Notes)
	if refundCreated {
		s.eventPublisher.PublishRefundInitiated(ctx, refund.ID, order.ID, order.CustomerID, refund.RefundAmount)
	}

	return &dto.CustomerRespondResponse{Id: violation.ID, Status: string(violation.Status)}, nil
}

// Escalate records why a party wants admin review of a rejected violation.
// Each side keeps its own reason so the admin sees both positions.
func (s *disputeService) Escalate(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.EscalateDisputeRequest) (*dto.EscalateDisputeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	violation, err := uow.ViolationRepository().FindOne(ctx, specification.ByID{ID: req.ViolationId})
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, apperror.NotFound("violation", "unknown violation id")
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: violation.OrderID})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}

	switch role {
	case entity.UserRoleProvider:
		if order.ProviderID != userId {
			return nil, apperror.Unauthorized("violation", "not a party to this dispute")
		}
	case entity.UserRoleCustomer:
		if order.CustomerID != userId {
			return nil, apperror.Unauthorized("violation", "not a party to this dispute")
		}
	default:
		return nil, apperror.Unauthorized("violation", "only dispute parties may escalate")
	}

	if violation.Status != entity.ViolationStatusCustomerRejected {
		return nil, apperror.InvalidState("violation", "only rejected violations can be escalated")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if role == entity.UserRoleProvider {
		violation.ProviderEscalationReason = req.Reason
	} else {
		violation.CustomerEscalationReason = req.Reason
	}

	if err := uow.ViolationRepository().UpdateGuarded(ctx, violation); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("DISPUTE", "Dispute escalated", map[string]interface{}{
		"violationId": violation.ID.String(),
		"role":        string(role),
	})
	s.eventPublisher.PublishDisputeEscalated(ctx, violation.ID, violation.OrderID, userId, string(role), req.Reason)

	return &dto.EscalateDisputeResponse{Id: violation.ID}, nil
}

func (s *disputeService) AppendMessage(ctx context.Context, userId uuid.UUID, role entity.UserRole, req *dto.DisputeMessageRequest) (*dto.DisputeMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	violation, err := s.loadAuthorizedViolation(ctx, uow, req.ViolationId, userId, role)
	if err != nil {
		return nil, err
	}
	if violation.Status == entity.ViolationStatusResolved {
		return nil, apperror.InvalidState("violation", "dispute thread is closed")
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: violation.OrderID})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}

	msg := &entity.DisputeMessage{
		ID:          uuid.New(),
		ViolationID: violation.ID,
		SenderID:    userId,
		SenderRole:  role,
		Body:        req.Message,
		CreatedAt:   time.Now(),
	}

	if err := uow.DisputeMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	// The sender already knows; everyone else on the thread gets a nudge.
	switch role {
	case entity.UserRoleCustomer:
		s.eventPublisher.PublishDisputeMessage(ctx, violation.ID, order.ID, userId, order.ProviderID, string(role))
	case entity.UserRoleProvider:
		s.eventPublisher.PublishDisputeMessage(ctx, violation.ID, order.ID, userId, order.CustomerID, string(role))
	default:
		s.eventPublisher.PublishDisputeMessage(ctx, violation.ID, order.ID, userId, order.CustomerID, string(role))
		s.eventPublisher.PublishDisputeMessage(ctx, violation.ID, order.ID, userId, order.ProviderID, string(role))
	}

	return s.mapper.ToMessageResponse(msg), nil
}

func (s *disputeService) ListMessages(ctx context.Context, userId uuid.UUID, role entity.UserRole, violationId uuid.UUID) (*dto.ListDisputeMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.loadAuthorizedViolation(ctx, uow, violationId, userId, role); err != nil {
		return nil, err
	}

	msgs, err := uow.DisputeMessageRepository().FindAll(ctx,
		specification.ByViolation{ViolationID: violationId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ListDisputeMessagesResponse{Messages: s.mapper.ToMessageResponseList(msgs)}, nil
}

func (s *disputeService) loadAuthorizedViolation(ctx context.Context, uow unitofwork.UnitOfWork, violationId, userId uuid.UUID, role entity.UserRole) (*entity.RentalViolation, error) {
	violation, err := uow.ViolationRepository().FindOne(ctx, specification.ByID{ID: violationId})
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, apperror.NotFound("violation", "unknown violation id")
	}

	if role == entity.UserRoleAdmin {
		return violation, nil
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: violation.OrderID})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}

	switch role {
	case entity.UserRoleCustomer:
		if order.CustomerID == userId {
			return violation, nil
		}
	case entity.UserRoleProvider:
		if order.ProviderID == userId {
			return violation, nil
		}
	}
	return nil, apperror.Unauthorized("violation", "not a party to this dispute")
}
