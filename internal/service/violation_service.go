package service

import (
	"context"
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
	"github.com/daohd2003/FRECS-sub006/pkg/evidence"

	"github.com/google/uuid"
)

type IViolationService interface {
	CreateViolations(ctx context.Context, providerId uuid.UUID, req *dto.CreateViolationsRequest) (*dto.CreateViolationsResponse, error)
	ResubmitViolation(ctx context.Context, providerId uuid.UUID, req *dto.ResubmitViolationRequest) (*dto.ResubmitViolationResponse, error)
	Show(ctx context.Context, userId uuid.UUID, role entity.UserRole, id uuid.UUID) (*dto.ViolationResponse, error)
	ListByOrder(ctx context.Context, userId uuid.UUID, role entity.UserRole, orderId uuid.UUID) (*dto.ListViolationsResponse, error)
}

type violationService struct {
	uowFactory     unitofwork.RepositoryFactory
	evidenceStore  evidence.Store
	eventPublisher adminEvents.Publisher
	mapper         *mapper.ViolationMapper
	logger         logger.ILogger
}

func NewViolationService(
	uowFactory unitofwork.RepositoryFactory,
	evidenceStore evidence.Store,
	eventPublisher adminEvents.Publisher,
	logger logger.ILogger,
) IViolationService {
	return &violationService{
		uowFactory:     uowFactory,
		evidenceStore:  evidenceStore,
		eventPublisher: eventPublisher,
		mapper:         mapper.NewViolationMapper(),
		logger:         logger,
	}
}

// CreateViolations files one or more violations against an order in a single
// batch. The batch is all-or-nothing: one invalid entry rejects the whole
// request and nothing is persisted.
func (s *violationService) CreateViolations(ctx context.Context, providerId uuid.UUID, req *dto.CreateViolationsRequest) (*dto.CreateViolationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOneWithItems(ctx, req.OrderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}
	if order.ProviderID != providerId {
		return nil, apperror.Unauthorized("order", "only the order's provider may report violations")
	}
	if !order.InspectionEligible() {
		return nil, apperror.InvalidState("order", "order is not under return inspection")
	}

	// Validate the whole batch before touching storage.
	violations := make([]*entity.RentalViolation, 0, len(req.Violations))
	now := time.Now()
	for _, input := range req.Violations {
		item := order.Item(input.OrderItemId)
		if item == nil {
			return nil, apperror.Validation("violation", "order_item_id", "item does not belong to this order")
		}
		if entity.ViolationType(input.Type) == entity.ViolationTypeDamaged && input.DamagePercentage == nil {
			return nil, apperror.Validation("violation", "damage_percentage", "damage percentage is required for DAMAGED violations")
		}
		itemDeposit := item.DepositPerUnit * float64(item.Quantity)
		if input.PenaltyAmount > itemDeposit {
			return nil, apperror.Validationf("violation", "penalty_amount", "penalty %.2f exceeds the item deposit %.2f", input.PenaltyAmount, itemDeposit)
		}

		violations = append(violations, &entity.RentalViolation{
			ID:                uuid.New(),
			OrderID:           order.ID,
			OrderItemID:       input.OrderItemId,
			Type:              entity.ViolationType(input.Type),
			Description:       input.Description,
			DamagePercentage:  input.DamagePercentage,
			PenaltyPercentage: input.PenaltyPercentage,
			PenaltyAmount:     input.PenaltyAmount,
			Status:            entity.ViolationStatusPending,
			CreatedAt:         now,
		})
	}

	// Evidence files land on disk before the transaction; if anything below
	// fails they are removed again.
	var uploadedURLs []string
	cleanup := func() {
		for _, url := range uploadedURLs {
			if err := s.evidenceStore.Delete(ctx, url); err != nil {
				s.logger.Warn("VIOLATION", "Failed to clean up evidence file", map[string]interface{}{
					"url":   url,
					"error": err.Error(),
				})
			}
		}
	}

	evidenceRows := make([][]entity.ViolationEvidence, len(violations))
	for i, v := range violations {
		if i >= len(req.Evidence) {
			break
		}
		for _, upload := range req.Evidence[i] {
			url, err := s.evidenceStore.Save(ctx, v.ID.String(), upload.Filename, upload.Content)
			if err != nil {
				cleanup()
				return nil, err
			}
			uploadedURLs = append(uploadedURLs, url)
			evidenceRows[i] = append(evidenceRows[i], entity.ViolationEvidence{
				ID:           uuid.New(),
				ViolationID:  v.ID,
				URL:          url,
				UploaderRole: entity.UploaderRoleProvider,
				UploadedAt:   now,
			})
		}
	}

	if err := uow.Begin(ctx); err != nil {
		cleanup()
		return nil, err
	}
	defer uow.Rollback()

	for i, v := range violations {
		if err := uow.ViolationRepository().Create(ctx, v); err != nil {
			cleanup()
			return nil, err
		}
		if len(evidenceRows[i]) > 0 {
			if err := uow.ViolationRepository().AddEvidence(ctx, evidenceRows[i]); err != nil {
				cleanup()
				return nil, err
			}
		}
	}

	if _, err := orderstatus.Recompute(ctx, uow, order.ID); err != nil {
		cleanup()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		cleanup()
		return nil, err
	}

	s.logger.Info("VIOLATION", "Violations filed", map[string]interface{}{
		"orderId": order.ID.String(),
		"count":   len(violations),
	})

	ids := make([]uuid.UUID, 0, len(violations))
	for _, v := range violations {
		ids = append(ids, v.ID)
		s.eventPublisher.PublishViolationCreated(ctx, v.ID, order.ID, order.CustomerID, order.ProviderID, string(v.Type), v.PenaltyAmount)
	}

	return &dto.CreateViolationsResponse{Ids: ids}, nil
}

// ResubmitViolation lets the provider revise a violation the customer
// rejected. The revision replaces claim details, clears the customer's
// response and any escalation reasons, and sends the violation back to
// PENDING for a fresh customer decision.
func (s *violationService) ResubmitViolation(ctx context.Context, providerId uuid.UUID, req *dto.ResubmitViolationRequest) (*dto.ResubmitViolationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	violation, err := uow.ViolationRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, apperror.NotFound("violation", "unknown violation id")
	}

	order, err := uow.OrderRepository().FindOneWithItems(ctx, violation.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}
	if order.ProviderID != providerId {
		return nil, apperror.Unauthorized("violation", "only the reporting provider may resubmit")
	}
	if violation.Status != entity.ViolationStatusCustomerRejected {
		return nil, apperror.InvalidState("violation", "only rejected violations can be resubmitted")
	}

	item := order.Item(violation.OrderItemID)
	if item == nil {
		return nil, apperror.Validation("violation", "order_item_id", "item does not belong to this order")
	}
	if entity.ViolationType(req.Type) == entity.ViolationTypeDamaged && req.DamagePercentage == nil {
		return nil, apperror.Validation("violation", "damage_percentage", "damage percentage is required for DAMAGED violations")
	}
	itemDeposit := item.DepositPerUnit * float64(item.Quantity)
	if req.PenaltyAmount > itemDeposit {
		return nil, apperror.Validationf("violation", "penalty_amount", "penalty %.2f exceeds the item deposit %.2f", req.PenaltyAmount, itemDeposit)
	}

	now := time.Now()
	var uploadedURLs []string
	cleanup := func() {
		for _, url := range uploadedURLs {
			if err := s.evidenceStore.Delete(ctx, url); err != nil {
				s.logger.Warn("VIOLATION", "Failed to clean up evidence file", map[string]interface{}{
					"url":   url,
					"error": err.Error(),
				})
			}
		}
	}

	var newEvidence []entity.ViolationEvidence
	for _, upload := range req.Evidence {
		url, err := s.evidenceStore.Save(ctx, violation.ID.String(), upload.Filename, upload.Content)
		if err != nil {
			cleanup()
			return nil, err
		}
		uploadedURLs = append(uploadedURLs, url)
		newEvidence = append(newEvidence, entity.ViolationEvidence{
			ID:           uuid.New(),
			ViolationID:  violation.ID,
			URL:          url,
			UploaderRole: entity.UploaderRoleProvider,
			UploadedAt:   now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		cleanup()
		return nil, err
	}
	defer uow.Rollback()

	violation.Type = entity.ViolationType(req.Type)
	violation.Description = req.Description
	violation.DamagePercentage = req.DamagePercentage
	violation.PenaltyPercentage = req.PenaltyPercentage
	violation.PenaltyAmount = req.PenaltyAmount
	violation.Status = entity.ViolationStatusPending
	violation.CustomerNotes = ""
	violation.CustomerResponseAt = nil
	violation.ProviderEscalationReason = ""
	violation.CustomerEscalationReason = ""

	if err := uow.ViolationRepository().UpdateGuarded(ctx, violation); err != nil {
		cleanup()
		return nil, err
	}
	if len(newEvidence) > 0 {
		if err := uow.ViolationRepository().AddEvidence(ctx, newEvidence); err != nil {
			cleanup()
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		cleanup()
		return nil, err
	}

	s.logger.Info("VIOLATION", "Violation resubmitted", map[string]interface{}{
		"violationId": violation.ID.String(),
		"orderId":     order.ID.String(),
	})
	s.eventPublisher.PublishViolationResubmitted(ctx, violation.ID, order.ID, order.CustomerID, violation.PenaltyAmount)

	return &dto.ResubmitViolationResponse{Id: violation.ID}, nil
}

func (s *violationService) Show(ctx context.Context, userId uuid.UUID, role entity.UserRole, id uuid.UUID) (*dto.ViolationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	violation, err := uow.ViolationRepository().FindOneWithEvidence(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if violation == nil {
		return nil, apperror.NotFound("violation", "unknown violation id")
	}

	if err := s.authorizeOrderAccess(ctx, uow, violation.OrderID, userId, role); err != nil {
		return nil, err
	}

	return s.mapper.ToResponse(violation), nil
}

func (s *violationService) ListByOrder(ctx context.Context, userId uuid.UUID, role entity.UserRole, orderId uuid.UUID) (*dto.ListViolationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.authorizeOrderAccess(ctx, uow, orderId, userId, role); err != nil {
		return nil, err
	}

	violations, err := uow.ViolationRepository().FindAll(ctx,
		specification.ByOrder{OrderID: orderId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	return &dto.ListViolationsResponse{Violations: s.mapper.ToResponseList(violations)}, nil
}

func (s *violationService) authorizeOrderAccess(ctx context.Context, uow unitofwork.UnitOfWork, orderId, userId uuid.UUID, role entity.UserRole) error {
	if role == entity.UserRoleAdmin {
		return nil
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NotFound("order", "unknown order id")
	}

	switch role {
	case entity.UserRoleCustomer:
		if order.CustomerID == userId {
			return nil
		}
	case entity.UserRoleProvider:
		if order.ProviderID == userId {
			return nil
		}
	}
	return apperror.Unauthorized("order", "not a party to this order")
}
