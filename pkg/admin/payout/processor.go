package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	pkgPayout "github.com/daohd2003/FRECS-sub006/pkg/payout"

	"github.com/google/uuid"
)

// ProcessCommand decides an initiated refund: approve it to pay out to the
// customer's bank account, or reject it to close the ledger entry as failed.
// ExternalTransactionId carries a manual settlement reference when the money
// moved outside the gateway; Notes records the operator's reason.
type ProcessCommand struct {
	RefundId              uuid.UUID
	AdminId               uuid.UUID
	Approve               bool
	BankAccountId         uuid.UUID
	ExternalTransactionId string
	Notes                 string
}

// Processor settles initiated deposit refunds. With a gateway configured the
// money moves through the external disbursement rail; without one the refund
// is marked completed for manual settlement. Gateway failures are recorded
// as failed rather than bubbling up, so the ledger always reflects the
// attempt.
type Processor struct {
	gateway   pkgPayout.Gateway
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

func NewProcessor(gateway pkgPayout.Gateway, logger logger.ILogger, publisher adminEvents.Publisher) *Processor {
	return &Processor{
		gateway:   gateway,
		logger:    logger,
		publisher: publisher,
	}
}

// GetAll retrieves paginated refunds with an optional status filter.
func (p *Processor) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.DepositRefund, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})

	return uow.DepositRefundRepository().FindAll(ctx, specs...)
}

func (p *Processor) Process(ctx context.Context, uow unitofwork.UnitOfWork, cmd ProcessCommand) (*entity.DepositRefund, error) {
	refund, err := uow.DepositRefundRepository().FindOne(ctx, specification.ByID{ID: cmd.RefundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("deposit_refund", "unknown refund id")
	}
	if refund.Status != entity.RefundStatusInitiated {
		return nil, apperror.InvalidState("deposit_refund", "refund already processed")
	}

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: refund.OrderID})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NotFound("order", "unknown order id")
	}

	if !cmd.Approve {
		return p.reject(ctx, uow, refund, order, cmd)
	}

	if cmd.BankAccountId == uuid.Nil {
		return nil, apperror.Validation("deposit_refund", "bank_account_id", "bank account is required to approve a payout")
	}

	// The payout target must belong to the customer receiving the money.
	ok, err := uow.BankAccountRepository().Exists(ctx, cmd.BankAccountId, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("deposit_refund", "bank_account_id", "bank account does not belong to the order's customer")
	}

	externalRef := cmd.ExternalTransactionId
	disburseErr := error(nil)
	if p.gateway != nil && refund.RefundAmount > 0 {
		account, err := uow.BankAccountRepository().FindOne(ctx, cmd.BankAccountId)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, apperror.NotFound("bank_account", "unknown bank account id")
		}
		customer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: order.CustomerID})
		if err != nil {
			return nil, err
		}

		d := pkgPayout.Disbursement{
			RefundID:        refund.ID.String(),
			Amount:          refund.RefundAmount,
			BeneficiaryName: account.AccountHolder,
			AccountNumber:   account.AccountNumber,
			BankCode:        account.BankName,
			Notes:           fmt.Sprintf("deposit refund for order %s", refund.OrderID),
		}
		if customer != nil {
			d.Email = customer.Email
		}
		externalRef, disburseErr = p.gateway.Disburse(ctx, d)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	refund.RefundBankAccountID = &cmd.BankAccountId
	refund.ProcessedByAdminID = &cmd.AdminId
	refund.ProcessedAt = &now
	if disburseErr != nil {
		refund.Status = entity.RefundStatusFailed
		refund.Notes = refund.Notes + "\n" + fmt.Sprintf("[%s] payout failed: %s", now.Format(time.RFC3339), disburseErr.Error())
	} else {
		refund.Status = entity.RefundStatusCompleted
		refund.ExternalTransactionID = externalRef
		if cmd.Notes != "" {
			refund.Notes = refund.Notes + "\n" + fmt.Sprintf("[%s] %s", now.Format(time.RFC3339), cmd.Notes)
		}
	}

	if err := uow.DepositRefundRepository().UpdateGuarded(ctx, refund); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if disburseErr != nil {
		p.logger.Warn("PAYOUT", "Refund payout failed", map[string]interface{}{
			"refundId": refund.ID.String(),
			"error":    disburseErr.Error(),
		})
	} else {
		p.logger.Info("PAYOUT", "Refund paid out", map[string]interface{}{
			"refundId": refund.ID.String(),
			"amount":   refund.RefundAmount,
		})
	}
	p.publisher.PublishRefundProcessed(ctx, refund.ID, refund.OrderID, order.CustomerID, refund.Status == entity.RefundStatusCompleted, refund.RefundAmount, externalRef)

	return refund, nil
}

// reject closes an initiated refund as failed without moving money. The
// operator's reason is stamped onto the ledger notes so the decision stays
// auditable.
func (p *Processor) reject(ctx context.Context, uow unitofwork.UnitOfWork, refund *entity.DepositRefund, order *entity.Order, cmd ProcessCommand) (*entity.DepositRefund, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	reason := cmd.Notes
	if reason == "" {
		reason = "rejected by operator"
	}
	refund.Status = entity.RefundStatusFailed
	refund.ProcessedByAdminID = &cmd.AdminId
	refund.ProcessedAt = &now
	refund.Notes = refund.Notes + "\n" + fmt.Sprintf("[%s] payout rejected: %s", now.Format(time.RFC3339), reason)

	if err := uow.DepositRefundRepository().UpdateGuarded(ctx, refund); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	p.logger.Info("PAYOUT", "Refund payout rejected", map[string]interface{}{
		"refundId": refund.ID.String(),
		"adminId":  cmd.AdminId.String(),
	})
	p.publisher.PublishRefundProcessed(ctx, refund.ID, refund.OrderID, order.CustomerID, false, refund.RefundAmount, "")

	return refund, nil
}
