package entity

import (
	"time"

	"github.com/google/uuid"
)

// ViolationType is the kind of non-compliance found at return inspection.
type ViolationType string

const (
	ViolationTypeDamaged     ViolationType = "DAMAGED"
	ViolationTypeLateReturn  ViolationType = "LATE_RETURN"
	ViolationTypeNotReturned ViolationType = "NOT_RETURNED"
)

func (t ViolationType) Valid() bool {
	switch t {
	case ViolationTypeDamaged, ViolationTypeLateReturn, ViolationTypeNotReturned:
		return true
	}
	return false
}

// ViolationStatus is the dispute sub-machine state.
// PENDING -> CUSTOMER_ACCEPTED | CUSTOMER_REJECTED -> RESOLVED.
// CUSTOMER_REJECTED may loop back to PENDING via provider resubmission.
type ViolationStatus string

const (
	ViolationStatusPending          ViolationStatus = "PENDING"
	ViolationStatusCustomerAccepted ViolationStatus = "CUSTOMER_ACCEPTED"
	ViolationStatusCustomerRejected ViolationStatus = "CUSTOMER_REJECTED"
	ViolationStatusResolved         ViolationStatus = "RESOLVED"
)

// UploaderRole tags who attached a piece of evidence.
type UploaderRole string

const (
	UploaderRoleProvider UploaderRole = "PROVIDER"
	UploaderRoleCustomer UploaderRole = "CUSTOMER"
)

type RentalViolation struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	OrderItemID uuid.UUID
	Type        ViolationType
	Description string

	DamagePercentage  *float64
	PenaltyPercentage float64
	PenaltyAmount     float64

	Status             ViolationStatus
	CustomerNotes      string
	CustomerResponseAt *time.Time

	ProviderEscalationReason string
	CustomerEscalationReason string

	// Version guards respond/resolve against concurrent writers.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	Evidence []ViolationEvidence
}

// Open reports whether the violation still needs a customer or admin decision.
func (v *RentalViolation) Open() bool {
	return v.Status == ViolationStatusPending || v.Status == ViolationStatusCustomerRejected
}

type ViolationEvidence struct {
	ID           uuid.UUID
	ViolationID  uuid.UUID
	URL          string
	UploaderRole UploaderRole
	UploadedAt   time.Time
}
