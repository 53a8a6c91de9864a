package orderstatus_test

import (
	"context"
	"testing"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/orderstatus"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrderWithViolations(store *memory.Store, orderStatus entity.OrderStatus, violationStatuses ...entity.ViolationStatus) entity.Order {
	order := entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		ProviderID: uuid.New(),
		Status:     orderStatus,
		Items: []entity.OrderItem{
			{ID: uuid.New(), ProductName: "Tuxedo", Quantity: 1, DepositPerUnit: 300},
		},
	}
	store.PutOrder(order)
	for _, vs := range violationStatuses {
		store.PutViolation(entity.RentalViolation{
			ID:          uuid.New(),
			OrderID:     order.ID,
			OrderItemID: order.Items[0].ID,
			Type:        entity.ViolationTypeDamaged,
			Status:      vs,
		})
	}
	return order
}

func TestRecompute_OpenViolationFlagsOrder(t *testing.T) {
	store := memory.NewStore()
	order := seedOrderWithViolations(store, entity.OrderStatusReturning, entity.ViolationStatusPending)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	status, err := orderstatus.Recompute(context.Background(), uow, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReturnedWithIssue, status)

	persisted, _ := store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusReturnedWithIssue, persisted.Status)
}

func TestRecompute_RejectedViolationKeepsOrderFlagged(t *testing.T) {
	store := memory.NewStore()
	order := seedOrderWithViolations(store, entity.OrderStatusReturnedWithIssue,
		entity.ViolationStatusResolved, entity.ViolationStatusCustomerRejected)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	status, err := orderstatus.Recompute(context.Background(), uow, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReturnedWithIssue, status)
}

func TestRecompute_AllViolationsClosedReleasesOrder(t *testing.T) {
	store := memory.NewStore()
	order := seedOrderWithViolations(store, entity.OrderStatusReturnedWithIssue,
		entity.ViolationStatusCustomerAccepted, entity.ViolationStatusResolved)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	status, err := orderstatus.Recompute(context.Background(), uow, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReturned, status)

	persisted, _ := store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusReturned, persisted.Status)
}

func TestRecompute_NoViolationsLeavesStatusAlone(t *testing.T) {
	store := memory.NewStore()
	order := seedOrderWithViolations(store, entity.OrderStatusReturning)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	status, err := orderstatus.Recompute(context.Background(), uow, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReturning, status)
}

func TestRecompute_OrderOutsideInspectionWindowUntouched(t *testing.T) {
	store := memory.NewStore()
	order := seedOrderWithViolations(store, entity.OrderStatusInUse, entity.ViolationStatusPending)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	status, err := orderstatus.Recompute(context.Background(), uow, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInUse, status)

	persisted, _ := store.Order(order.ID)
	assert.Equal(t, entity.OrderStatusInUse, persisted.Status)
}
