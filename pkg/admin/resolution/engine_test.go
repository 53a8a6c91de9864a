package resolution_test

import (
	"context"
	"testing"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	"github.com/daohd2003/FRECS-sub006/pkg/admin/resolution"
	"github.com/daohd2003/FRECS-sub006/pkg/deposit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *resolution.Engine {
	return newEngineWith(adminEvents.NewNatsPublisher(nil, logger.Noop()))
}

func newEngineWith(publisher adminEvents.Publisher) *resolution.Engine {
	return resolution.NewEngine(
		deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop()),
		logger.Noop(),
		publisher,
	)
}

// spyPublisher records refund announcements; everything else falls through
// to the nil-safe base.
type spyPublisher struct {
	*adminEvents.NatsPublisher
	refundInitiated []float64
}

func newSpyPublisher() *spyPublisher {
	return &spyPublisher{NatsPublisher: adminEvents.NewNatsPublisher(nil, logger.Noop())}
}

func (p *spyPublisher) PublishRefundInitiated(ctx context.Context, refundID, orderID, customerID uuid.UUID, amount float64) {
	p.refundInitiated = append(p.refundInitiated, amount)
}

// seedDispute yields an escalated violation on a returning order with one
// item holding a 300 deposit. Total order deposit is 500.
func seedDispute(store *memory.Store, penalty float64) (entity.Order, entity.RentalViolation) {
	order := entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		ProviderID: uuid.New(),
		Status:     entity.OrderStatusReturnedWithIssue,
		Items: []entity.OrderItem{
			{ID: uuid.New(), ProductName: "Evening gown", Quantity: 1, DepositPerUnit: 300},
			{ID: uuid.New(), ProductName: "Clutch bag", Quantity: 1, DepositPerUnit: 200},
		},
	}
	store.PutOrder(order)

	v := entity.RentalViolation{
		ID:            uuid.New(),
		OrderID:       order.ID,
		OrderItemID:   order.Items[0].ID,
		Type:          entity.ViolationTypeDamaged,
		Description:   "Torn hem",
		PenaltyAmount: penalty,
		Status:        entity.ViolationStatusCustomerRejected,
	}
	store.PutViolation(v)
	return order, v
}

func TestResolve_RejectClaimRestoresFullRefund(t *testing.T) {
	store := memory.NewStore()
	order, v := seedDispute(store, 120)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	res, err := newEngine().Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        entity.ResolutionTypeRejectClaim,
		Reason:      "Evidence shows pre-existing damage",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.CustomerFineAmount)
	assert.Equal(t, 0.0, res.ProviderCompensationAmount)
	assert.Equal(t, entity.ResolutionStatusCompleted, res.Status)

	refund, ok := store.RefundByOrder(order.ID)
	require.True(t, ok)
	assert.Equal(t, 500.0, refund.RefundAmount)
	assert.Equal(t, 0.0, refund.TotalPenaltyAmount)

	persisted, _ := store.Violation(v.ID)
	assert.Equal(t, entity.ViolationStatusResolved, persisted.Status)
	assert.Equal(t, 0.0, persisted.PenaltyAmount)

	persistedOrder, _ := store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusReturned, persistedOrder.Status)
}

func TestResolve_UpholdClaimIgnoresAdminAmounts(t *testing.T) {
	store := memory.NewStore()
	order, v := seedDispute(store, 120)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	res, err := newEngine().Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId:        v.ID,
		AdminId:            uuid.New(),
		Type:               entity.ResolutionTypeUpholdClaim,
		FineAmount:         999,
		CompensationAmount: 999,
		Reason:             "Claim stands as filed",
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, res.CustomerFineAmount)
	assert.Equal(t, 120.0, res.ProviderCompensationAmount)

	refund, _ := store.RefundByOrder(order.ID)
	assert.Equal(t, 380.0, refund.RefundAmount)
}

func TestResolve_CompromiseClampsFineToItemDeposit(t *testing.T) {
	store := memory.NewStore()
	order, v := seedDispute(store, 120)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	// Item deposit is 300; the admin's 450 fine is capped there. The
	// compensation passes through untouched.
	res, err := newEngine().Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId:        v.ID,
		AdminId:            uuid.New(),
		Type:               entity.ResolutionTypeCompromise,
		FineAmount:         450,
		CompensationAmount: 200,
		Reason:             "Split the difference",
	})
	require.NoError(t, err)

	assert.Equal(t, 300.0, res.CustomerFineAmount)
	assert.Equal(t, 200.0, res.ProviderCompensationAmount)

	refund, _ := store.RefundByOrder(order.ID)
	assert.Equal(t, 200.0, refund.RefundAmount)
}

func TestResolve_OnlyEscalatedDisputes(t *testing.T) {
	store := memory.NewStore()
	_, v := seedDispute(store, 120)
	v.Status = entity.ViolationStatusPending
	store.PutViolation(v)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	_, err := newEngine().Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        entity.ResolutionTypeRejectClaim,
		Reason:      "Claim never made it past the customer",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestResolve_SecondRulingRejected(t *testing.T) {
	store := memory.NewStore()
	_, v := seedDispute(store, 120)
	factory := memory.NewFactory(store)
	ctx := context.Background()
	engine := newEngine()

	_, err := engine.Resolve(ctx, factory.NewUnitOfWork(ctx), resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        entity.ResolutionTypeUpholdClaim,
		Reason:      "Claim stands as filed",
	})
	require.NoError(t, err)

	// The violation is RESOLVED now, so the state guard fires first; either
	// way a second ruling must not go through.
	_, err = engine.Resolve(ctx, factory.NewUnitOfWork(ctx), resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        entity.ResolutionTypeRejectClaim,
		Reason:      "Changed my mind on review",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestResolve_EmptyReasonRejected(t *testing.T) {
	store := memory.NewStore()
	_, v := seedDispute(store, 120)
	factory := memory.NewFactory(store)
	ctx := context.Background()

	for _, reason := range []string{"", "   "} {
		_, err := newEngine().Resolve(ctx, factory.NewUnitOfWork(ctx), resolution.ResolveCommand{
			ViolationId: v.ID,
			AdminId:     uuid.New(),
			Type:        entity.ResolutionTypeUpholdClaim,
			Reason:      reason,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	}

	persisted, _ := store.Violation(v.ID)
	assert.Equal(t, entity.ViolationStatusCustomerRejected, persisted.Status)
}

func TestResolve_AnnouncesRefundOnFirstRuling(t *testing.T) {
	store := memory.NewStore()
	_, v := seedDispute(store, 120)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	spy := newSpyPublisher()

	_, err := newEngineWith(spy).Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        entity.ResolutionTypeUpholdClaim,
		Reason:      "Claim stands as filed",
	})
	require.NoError(t, err)

	require.Len(t, spy.refundInitiated, 1)
	assert.Equal(t, 380.0, spy.refundInitiated[0])
}

func TestResolve_ExistingLedgerEntryNotReannounced(t *testing.T) {
	store := memory.NewStore()
	order, v := seedDispute(store, 120)
	store.PutRefund(entity.DepositRefund{
		ID:                    uuid.New(),
		OrderID:               order.ID,
		OriginalDepositAmount: 500,
		TotalPenaltyAmount:    100,
		RefundAmount:          400,
		Status:                entity.RefundStatusInitiated,
	})
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	spy := newSpyPublisher()

	_, err := newEngineWith(spy).Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        entity.ResolutionTypeRejectClaim,
		Reason:      "Evidence shows pre-existing damage",
	})
	require.NoError(t, err)

	assert.Empty(t, spy.refundInitiated)
}

func TestResolve_UnknownTypeRejected(t *testing.T) {
	store := memory.NewStore()
	_, v := seedDispute(store, 120)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	_, err := newEngine().Resolve(context.Background(), uow, resolution.ResolveCommand{
		ViolationId: v.ID,
		AdminId:     uuid.New(),
		Type:        "SPLIT_EVENLY",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestQueue_ListsEscalatedNewestFirst(t *testing.T) {
	store := memory.NewStore()
	order, newest := seedDispute(store, 50)
	newest.CreatedAt = time.Now()
	store.PutViolation(newest)

	older := entity.RentalViolation{
		ID:          uuid.New(),
		OrderID:     order.ID,
		OrderItemID: order.Items[0].ID,
		Type:        entity.ViolationTypeLateReturn,
		Status:      entity.ViolationStatusCustomerRejected,
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	store.PutViolation(older)
	// Accepted violations never show up in the queue.
	store.PutViolation(entity.RentalViolation{
		ID:          uuid.New(),
		OrderID:     order.ID,
		OrderItemID: order.Items[0].ID,
		Type:        entity.ViolationTypeDamaged,
		Status:      entity.ViolationStatusCustomerAccepted,
	})

	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	queue, err := newEngine().Queue(context.Background(), uow, 1, 10)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, newest.ID, queue[0].ID)
	assert.Equal(t, older.ID, queue[1].ID)
}
