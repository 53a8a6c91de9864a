package payout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	"github.com/daohd2003/FRECS-sub006/pkg/admin/payout"
	pkgPayout "github.com/daohd2003/FRECS-sub006/pkg/payout"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	ref  string
	err  error
	seen []pkgPayout.Disbursement
}

func (g *stubGateway) Disburse(ctx context.Context, d pkgPayout.Disbursement) (string, error) {
	g.seen = append(g.seen, d)
	return g.ref, g.err
}

type payoutFixture struct {
	Order   entity.Order
	Refund  entity.DepositRefund
	Account entity.BankAccount
	AdminID uuid.UUID
}

func seedPayout(store *memory.Store, amount float64) payoutFixture {
	customerID := uuid.New()
	order := entity.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProviderID: uuid.New(),
		Status:     entity.OrderStatusReturned,
	}
	store.PutOrder(order)
	store.PutUser(entity.User{ID: customerID, Email: "renter@example.com", FullName: "Ann Renter", Role: entity.UserRoleCustomer})

	account := entity.BankAccount{
		ID:            uuid.New(),
		OwnerID:       customerID,
		BankName:      "bca",
		AccountNumber: "1234567890",
		AccountHolder: "Ann Renter",
	}
	store.PutBankAccount(account)

	refund := entity.DepositRefund{
		ID:                    uuid.New(),
		OrderID:               order.ID,
		OriginalDepositAmount: 500,
		TotalPenaltyAmount:    500 - amount,
		RefundAmount:          amount,
		Status:                entity.RefundStatusInitiated,
	}
	store.PutRefund(refund)

	return payoutFixture{Order: order, Refund: refund, Account: account, AdminID: uuid.New()}
}

func newProcessor(gateway pkgPayout.Gateway) *payout.Processor {
	return payout.NewProcessor(gateway, logger.Noop(), adminEvents.NewNatsPublisher(nil, logger.Noop()))
}

func TestProcess_ManualSettlementWithoutGateway(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	refund, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      fx.Refund.ID,
		AdminId:       fx.AdminID,
		Approve:       true,
		BankAccountId: fx.Account.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusCompleted, refund.Status)
	assert.Empty(t, refund.ExternalTransactionID)
	require.NotNil(t, refund.RefundBankAccountID)
	assert.Equal(t, fx.Account.ID, *refund.RefundBankAccountID)
	require.NotNil(t, refund.ProcessedByAdminID)
	assert.Equal(t, fx.AdminID, *refund.ProcessedByAdminID)
	assert.NotNil(t, refund.ProcessedAt)
}

func TestProcess_RejectClosesRefundAsFailed(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	gw := &stubGateway{ref: "should-not-be-used"}

	refund, err := newProcessor(gw).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId: fx.Refund.ID,
		AdminId:  fx.AdminID,
		Approve:  false,
		Notes:    "bank account under fraud review",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusFailed, refund.Status)
	assert.Contains(t, refund.Notes, "payout rejected: bank account under fraud review")
	assert.Nil(t, refund.RefundBankAccountID)
	require.NotNil(t, refund.ProcessedByAdminID)
	assert.Equal(t, fx.AdminID, *refund.ProcessedByAdminID)
	assert.NotNil(t, refund.ProcessedAt)
	assert.Empty(t, gw.seen)

	persisted, err := uow.DepositRefundRepository().FindOneByOrder(context.Background(), fx.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RefundStatusFailed, persisted.Status)
}

func TestProcess_RejectWithoutNotesStillRecordsReason(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	refund, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId: fx.Refund.ID,
		AdminId:  fx.AdminID,
		Approve:  false,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusFailed, refund.Status)
	assert.Contains(t, refund.Notes, "payout rejected: rejected by operator")
}

func TestProcess_ManualExternalReferenceRecorded(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	refund, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:              fx.Refund.ID,
		AdminId:               fx.AdminID,
		Approve:               true,
		BankAccountId:         fx.Account.ID,
		ExternalTransactionId: "wire-2024-0117",
		Notes:                 "settled over the counter",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusCompleted, refund.Status)
	assert.Equal(t, "wire-2024-0117", refund.ExternalTransactionID)
	assert.Contains(t, refund.Notes, "settled over the counter")
}

func TestProcess_ApproveRequiresBankAccount(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	_, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId: fx.Refund.ID,
		AdminId:  fx.AdminID,
		Approve:  true,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestProcess_GatewayDisbursement(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	gw := &stubGateway{ref: "iris-ref-001"}

	refund, err := newProcessor(gw).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      fx.Refund.ID,
		AdminId:       fx.AdminID,
		Approve:       true,
		BankAccountId: fx.Account.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusCompleted, refund.Status)
	assert.Equal(t, "iris-ref-001", refund.ExternalTransactionID)

	require.Len(t, gw.seen, 1)
	assert.Equal(t, 380.0, gw.seen[0].Amount)
	assert.Equal(t, "Ann Renter", gw.seen[0].BeneficiaryName)
	assert.Equal(t, "1234567890", gw.seen[0].AccountNumber)
	assert.Equal(t, "renter@example.com", gw.seen[0].Email)
}

func TestProcess_GatewayFailureRecordedOnLedger(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	gw := &stubGateway{err: errors.New("beneficiary bank unavailable")}

	refund, err := newProcessor(gw).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      fx.Refund.ID,
		AdminId:       fx.AdminID,
		Approve:       true,
		BankAccountId: fx.Account.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusFailed, refund.Status)
	assert.Contains(t, refund.Notes, "payout failed: beneficiary bank unavailable")
	assert.Empty(t, refund.ExternalTransactionID)
}

func TestProcess_ZeroRefundSkipsGateway(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 0)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	gw := &stubGateway{ref: "should-not-be-used"}

	refund, err := newProcessor(gw).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      fx.Refund.ID,
		AdminId:       fx.AdminID,
		Approve:       true,
		BankAccountId: fx.Account.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RefundStatusCompleted, refund.Status)
	assert.Empty(t, refund.ExternalTransactionID)
	assert.Empty(t, gw.seen)
}

func TestProcess_ForeignBankAccountRejected(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	stranger := entity.BankAccount{ID: uuid.New(), OwnerID: uuid.New(), BankName: "bni", AccountNumber: "999"}
	store.PutBankAccount(stranger)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	_, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      fx.Refund.ID,
		AdminId:       fx.AdminID,
		Approve:       true,
		BankAccountId: stranger.ID,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestProcess_AlreadySettledRejected(t *testing.T) {
	store := memory.NewStore()
	fx := seedPayout(store, 380)
	fx.Refund.Status = entity.RefundStatusCompleted
	store.PutRefund(fx.Refund)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	_, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      fx.Refund.ID,
		AdminId:       fx.AdminID,
		Approve:       true,
		BankAccountId: fx.Account.ID,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestProcess_UnknownRefund(t *testing.T) {
	store := memory.NewStore()
	seedPayout(store, 380)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	_, err := newProcessor(nil).Process(context.Background(), uow, payout.ProcessCommand{
		RefundId:      uuid.New(),
		AdminId:       uuid.New(),
		Approve:       true,
		BankAccountId: uuid.New(),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetAll_FiltersByStatus(t *testing.T) {
	store := memory.NewStore()
	seedPayout(store, 380)
	settled := seedPayout(store, 100)
	settled.Refund.Status = entity.RefundStatusCompleted
	store.PutRefund(settled.Refund)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	refunds, err := newProcessor(nil).GetAll(context.Background(), uow, 1, 10, string(entity.RefundStatusInitiated))
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.Equal(t, entity.RefundStatusInitiated, refunds[0].Status)
}
