package deposit_test

import (
	"context"
	"testing"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"
	"github.com/daohd2003/FRECS-sub006/pkg/deposit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(store *memory.Store, depositPerUnit float64) entity.Order {
	order := entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		ProviderID: uuid.New(),
		Status:     entity.OrderStatusReturning,
		Items: []entity.OrderItem{
			{ID: uuid.New(), ProductName: "Evening gown", Quantity: 1, DepositPerUnit: depositPerUnit},
		},
	}
	order.Items[0].OrderID = order.ID
	store.PutOrder(order)
	return order
}

func TestReconcile_CreatesLedgerEntryLazily(t *testing.T) {
	store := memory.NewStore()
	order := seedOrder(store, 500)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	r := deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop())
	refund, created, err := r.Reconcile(context.Background(), uow, order.ID, 120, "damage accepted")
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, entity.RefundStatusInitiated, refund.Status)
	assert.Equal(t, 500.0, refund.OriginalDepositAmount)
	assert.Equal(t, 120.0, refund.TotalPenaltyAmount)
	assert.Equal(t, 380.0, refund.RefundAmount)
	assert.Contains(t, refund.Notes, "damage accepted")

	persisted, ok := store.RefundByOrder(order.ID)
	require.True(t, ok)
	assert.Equal(t, refund.RefundAmount, persisted.RefundAmount)
}

func TestReconcile_RefundNeverNegative(t *testing.T) {
	store := memory.NewStore()
	order := seedOrder(store, 200)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	r := deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop())
	refund, _, err := r.Reconcile(context.Background(), uow, order.ID, 800, "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, refund.RefundAmount)
	assert.Equal(t, 800.0, refund.TotalPenaltyAmount)
}

func TestReconcile_NegativePenaltyRejected(t *testing.T) {
	store := memory.NewStore()
	order := seedOrder(store, 200)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	r := deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop())
	_, _, err := r.Reconcile(context.Background(), uow, order.ID, -10, "")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestReconcile_UnknownOrder(t *testing.T) {
	store := memory.NewStore()
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	r := deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop())
	_, _, err := r.Reconcile(context.Background(), uow, uuid.New(), 50, "")
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReconcile_OverwriteReplacesPenalty(t *testing.T) {
	store := memory.NewStore()
	order := seedOrder(store, 500)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	ctx := context.Background()

	r := deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop())
	_, _, err := r.Reconcile(ctx, uow, order.ID, 120, "first ruling")
	require.NoError(t, err)

	refund, created, err := r.Reconcile(ctx, uow, order.ID, 50, "revised ruling")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, 50.0, refund.TotalPenaltyAmount)
	assert.Equal(t, 450.0, refund.RefundAmount)
	assert.Contains(t, refund.Notes, "first ruling")
	assert.Contains(t, refund.Notes, "revised ruling")
}

func TestReconcile_SumAccumulatesPenalties(t *testing.T) {
	store := memory.NewStore()
	order := seedOrder(store, 500)
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	ctx := context.Background()

	r := deposit.NewReconciler(deposit.AggregateSum, logger.Noop())
	_, _, err := r.Reconcile(ctx, uow, order.ID, 100, "")
	require.NoError(t, err)

	refund, _, err := r.Reconcile(ctx, uow, order.ID, 50, "")
	require.NoError(t, err)

	assert.Equal(t, 150.0, refund.TotalPenaltyAmount)
	assert.Equal(t, 350.0, refund.RefundAmount)
}

func TestReconcile_SettledLedgerIsImmutable(t *testing.T) {
	store := memory.NewStore()
	order := seedOrder(store, 500)
	store.PutRefund(entity.DepositRefund{
		ID:                    uuid.New(),
		OrderID:               order.ID,
		OriginalDepositAmount: 500,
		TotalPenaltyAmount:    100,
		RefundAmount:          400,
		Status:                entity.RefundStatusCompleted,
	})
	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())

	r := deposit.NewReconciler(deposit.AggregateOverwrite, logger.Noop())
	_, _, err := r.Reconcile(context.Background(), uow, order.ID, 200, "")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    deposit.AggregationStrategy
		wantErr bool
	}{
		{input: "overwrite", want: deposit.AggregateOverwrite},
		{input: "", want: deposit.AggregateOverwrite},
		{input: "sum", want: deposit.AggregateSum},
		{input: "average", wantErr: true},
	}

	for _, tt := range tests {
		got, err := deposit.ParseStrategy(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		assert.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
