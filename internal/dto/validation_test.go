package dto_test

import (
	"testing"

	"github.com/daohd2003/FRECS-sub006/internal/dto"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validViolationInput() dto.ViolationInput {
	return dto.ViolationInput{
		OrderItemId:   uuid.New(),
		Type:          "DAMAGED",
		Description:   "Torn hem along the left seam of the gown",
		PenaltyAmount: 120,
	}
}

func TestCreateViolationsRequest_DescriptionTooShort(t *testing.T) {
	input := validViolationInput()
	input.Description = "torn"

	err := serverutils.ValidateRequest(dto.CreateViolationsRequest{
		OrderId:    uuid.New(),
		Violations: []dto.ViolationInput{input},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestCreateViolationsRequest_DescriptiveClaimAccepted(t *testing.T) {
	err := serverutils.ValidateRequest(dto.CreateViolationsRequest{
		OrderId:    uuid.New(),
		Violations: []dto.ViolationInput{validViolationInput()},
	})
	assert.NoError(t, err)
}

func TestResubmitViolationRequest_DescriptionTooShort(t *testing.T) {
	err := serverutils.ValidateRequest(dto.ResubmitViolationRequest{
		Id:            uuid.New(),
		Type:          "LATE_RETURN",
		Description:   "late",
		PenaltyAmount: 50,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolveDisputeRequest_ReasonRequired(t *testing.T) {
	err := serverutils.ValidateRequest(dto.ResolveDisputeRequest{
		ViolationId:    uuid.New(),
		ResolutionType: "UPHOLD_CLAIM",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolveDisputeRequest_ReasonTooShort(t *testing.T) {
	err := serverutils.ValidateRequest(dto.ResolveDisputeRequest{
		ViolationId:    uuid.New(),
		ResolutionType: "UPHOLD_CLAIM",
		Reason:         "ok",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolveDisputeRequest_ReasonedRulingAccepted(t *testing.T) {
	err := serverutils.ValidateRequest(dto.ResolveDisputeRequest{
		ViolationId:    uuid.New(),
		ResolutionType: "COMPROMISE",
		FineAmount:     80,
		Reason:         "Evidence shows partial damage attributable to both sides",
	})
	assert.NoError(t, err)
}

func TestProcessPayoutRequest_BankAccountRequiredOnApprove(t *testing.T) {
	err := serverutils.ValidateRequest(dto.ProcessPayoutRequest{
		RefundId: uuid.New(),
		Approve:  true,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestProcessPayoutRequest_RejectNeedsNoBankAccount(t *testing.T) {
	err := serverutils.ValidateRequest(dto.ProcessPayoutRequest{
		RefundId: uuid.New(),
		Approve:  false,
		Notes:    "customer bank details unverified",
	})
	assert.NoError(t, err)
}
