package implementation

import (
	"context"
	"testing"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestDepositRefundFindOneByOrder_MapsRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepositRefundRepository(db)

	refundID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "order_id", "original_deposit_amount", "total_penalty_amount",
		"refund_amount", "status", "notes", "external_transaction_id",
		"version", "created_at", "updated_at",
	}).AddRow(refundID, orderID, 500.0, 120.0, 380.0, "initiated", "", "", 2, now, now)

	mock.ExpectQuery(`SELECT \* FROM "deposit_refunds" WHERE order_id = \$1`).
		WithArgs(orderID, 1).
		WillReturnRows(rows)

	refund, err := repo.FindOneByOrder(context.Background(), orderID)
	require.NoError(t, err)
	require.NotNil(t, refund)

	assert.Equal(t, refundID, refund.ID)
	assert.Equal(t, entity.RefundStatusInitiated, refund.Status)
	assert.Equal(t, 380.0, refund.RefundAmount)
	assert.Equal(t, 2, refund.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositRefundFindOneByOrder_MissingRowIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepositRefundRepository(db)
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "deposit_refunds" WHERE order_id = \$1`).
		WithArgs(orderID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	refund, err := repo.FindOneByOrder(context.Background(), orderID)
	assert.NoError(t, err)
	assert.Nil(t, refund)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositRefundUpdateGuarded_VersionConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepositRefundRepository(db)

	refund := &entity.DepositRefund{
		ID:           uuid.New(),
		OrderID:      uuid.New(),
		RefundAmount: 380,
		Status:       entity.RefundStatusInitiated,
		Version:      3,
	}

	// Another writer bumped the version first: zero rows match the guard.
	mock.ExpectExec(`UPDATE "deposit_refunds" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateGuarded(context.Background(), refund)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
	assert.Equal(t, 3, refund.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepositRefundUpdateGuarded_BumpsVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDepositRefundRepository(db)

	refund := &entity.DepositRefund{
		ID:           uuid.New(),
		OrderID:      uuid.New(),
		RefundAmount: 380,
		Status:       entity.RefundStatusCompleted,
		Version:      3,
	}

	mock.ExpectExec(`UPDATE "deposit_refunds" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateGuarded(context.Background(), refund)
	require.NoError(t, err)
	assert.Equal(t, 4, refund.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
