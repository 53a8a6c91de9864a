package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
	"github.com/daohd2003/FRECS-sub006/internal/service"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	"github.com/daohd2003/FRECS-sub006/pkg/evidence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViolationService(t *testing.T, store *memory.Store) service.IViolationService {
	t.Helper()
	evStore, err := evidence.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return service.NewViolationService(
		memory.NewFactory(store),
		evStore,
		adminEvents.NewNatsPublisher(nil, logger.Noop()),
		logger.Noop(),
	)
}

func TestCreateViolations_BatchSucceeds(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	svc := newViolationService(t, store)

	resp, err := svc.CreateViolations(context.Background(), fx.ProviderID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: fx.GownItem.ID, Type: "DAMAGED", Description: "Torn hem", DamagePercentage: f64(25), PenaltyPercentage: 40, PenaltyAmount: 120},
			{OrderItemId: fx.ShoeItem.ID, Type: "LATE_RETURN", Description: "Three days late", PenaltyAmount: 50},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Ids, 2)

	for _, id := range resp.Ids {
		v, ok := store.Violation(id)
		require.True(t, ok)
		assert.Equal(t, entity.ViolationStatusPending, v.Status)
	}

	// Filing an open violation flags the order.
	order, _ := store.Order(fx.Order.ID)
	assert.Equal(t, entity.OrderStatusReturnedWithIssue, order.Status)
}

func TestCreateViolations_StoresEvidence(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	svc := newViolationService(t, store)

	resp, err := svc.CreateViolations(context.Background(), fx.ProviderID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: fx.GownItem.ID, Type: "DAMAGED", Description: "Torn hem", DamagePercentage: f64(25), PenaltyAmount: 120},
		},
		Evidence: [][]dto.EvidenceUpload{
			{{Filename: "hem.jpg", Content: strings.NewReader("jpeg-bytes")}},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Ids, 1)

	uow := memory.NewFactory(store).NewUnitOfWork(context.Background())
	v, err := uow.ViolationRepository().FindOneWithEvidence(context.Background(), specification.ByID{ID: resp.Ids[0]})
	require.NoError(t, err)
	require.Len(t, v.Evidence, 1)
	assert.Contains(t, v.Evidence[0].URL, resp.Ids[0].String())
	assert.Equal(t, entity.UploaderRoleProvider, v.Evidence[0].UploaderRole)
}

func TestCreateViolations_OnlyProviderMayReport(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	svc := newViolationService(t, store)

	_, err := svc.CreateViolations(context.Background(), fx.CustomerID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: fx.GownItem.ID, Type: "LATE_RETURN", Description: "Late", PenaltyAmount: 10},
		},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

func TestCreateViolations_OrderMustBeUnderInspection(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	fx.Order.Status = entity.OrderStatusInUse
	store.PutOrder(fx.Order)
	svc := newViolationService(t, store)

	_, err := svc.CreateViolations(context.Background(), fx.ProviderID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: fx.GownItem.ID, Type: "LATE_RETURN", Description: "Late", PenaltyAmount: 10},
		},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestCreateViolations_BatchIsAllOrNothing(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	svc := newViolationService(t, store)

	// Second entry exceeds the shoe deposit (100 x 2 = 200).
	_, err := svc.CreateViolations(context.Background(), fx.ProviderID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: fx.GownItem.ID, Type: "LATE_RETURN", Description: "Late", PenaltyAmount: 50},
			{OrderItemId: fx.ShoeItem.ID, Type: "DAMAGED", Description: "Scuffed", DamagePercentage: f64(90), PenaltyAmount: 250},
		},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	// Nothing landed, the order was not flagged.
	order, _ := store.Order(fx.Order.ID)
	assert.Equal(t, entity.OrderStatusReturning, order.Status)
}

func TestCreateViolations_DamagedRequiresDamagePercentage(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	svc := newViolationService(t, store)

	_, err := svc.CreateViolations(context.Background(), fx.ProviderID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: fx.GownItem.ID, Type: "DAMAGED", Description: "Torn", PenaltyAmount: 50},
		},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateViolations_ForeignItemRejected(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	svc := newViolationService(t, store)

	_, err := svc.CreateViolations(context.Background(), fx.ProviderID, &dto.CreateViolationsRequest{
		OrderId: fx.Order.ID,
		Violations: []dto.ViolationInput{
			{OrderItemId: uuid.New(), Type: "LATE_RETURN", Description: "Late", PenaltyAmount: 10},
		},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResubmitViolation_RevisesRejectedClaim(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	v := seedViolation(store, fx, entity.ViolationStatusCustomerRejected, 120)
	v.CustomerNotes = "I disagree"
	v.ProviderEscalationReason = "need review"
	store.PutViolation(v)
	svc := newViolationService(t, store)

	resp, err := svc.ResubmitViolation(context.Background(), fx.ProviderID, &dto.ResubmitViolationRequest{
		Id:               v.ID,
		Type:             "DAMAGED",
		Description:      "Torn hem, revised estimate",
		DamagePercentage: f64(15),
		PenaltyAmount:    80,
	})
	require.NoError(t, err)
	assert.Equal(t, v.ID, resp.Id)

	revised, _ := store.Violation(v.ID)
	assert.Equal(t, entity.ViolationStatusPending, revised.Status)
	assert.Equal(t, 80.0, revised.PenaltyAmount)
	assert.Empty(t, revised.CustomerNotes)
	assert.Nil(t, revised.CustomerResponseAt)
	assert.Empty(t, revised.ProviderEscalationReason)
	assert.Empty(t, revised.CustomerEscalationReason)
}

func TestResubmitViolation_OnlyFromRejected(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	v := seedViolation(store, fx, entity.ViolationStatusPending, 120)
	svc := newViolationService(t, store)

	_, err := svc.ResubmitViolation(context.Background(), fx.ProviderID, &dto.ResubmitViolationRequest{
		Id:               v.ID,
		Type:             "DAMAGED",
		Description:      "Revised",
		DamagePercentage: f64(10),
		PenaltyAmount:    50,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestShow_PartyAccessOnly(t *testing.T) {
	store := memory.NewStore()
	fx := seedReturningOrder(store)
	v := seedViolation(store, fx, entity.ViolationStatusPending, 120)
	svc := newViolationService(t, store)
	ctx := context.Background()

	_, err := svc.Show(ctx, fx.CustomerID, entity.UserRoleCustomer, v.ID)
	assert.NoError(t, err)

	_, err = svc.Show(ctx, uuid.New(), entity.UserRoleAdmin, v.ID)
	assert.NoError(t, err)

	_, err = svc.Show(ctx, uuid.New(), entity.UserRoleCustomer, v.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}
