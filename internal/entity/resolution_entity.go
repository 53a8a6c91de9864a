package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResolutionType is the admin's ruling policy on a disputed violation.
type ResolutionType string

const (
	ResolutionTypeUpholdClaim ResolutionType = "UPHOLD_CLAIM"
	ResolutionTypeRejectClaim ResolutionType = "REJECT_CLAIM"
	ResolutionTypeCompromise  ResolutionType = "COMPROMISE"
)

func (t ResolutionType) Valid() bool {
	switch t {
	case ResolutionTypeUpholdClaim, ResolutionTypeRejectClaim, ResolutionTypeCompromise:
		return true
	}
	return false
}

type ResolutionStatus string

const (
	ResolutionStatusPending     ResolutionStatus = "PENDING"
	ResolutionStatusUnderReview ResolutionStatus = "UNDER_REVIEW"
	ResolutionStatusCompleted   ResolutionStatus = "COMPLETED"
)

// IssueResolution is the immutable record of one admin ruling.
// Exactly one per violation; never mutated after COMPLETED.
type IssueResolution struct {
	ID          uuid.UUID
	ViolationID uuid.UUID

	Type                       ResolutionType
	CustomerFineAmount         float64
	ProviderCompensationAmount float64
	Reason                     string

	Status             ResolutionStatus
	ProcessedByAdminID *uuid.UUID
	ProcessedAt        *time.Time
	CreatedAt          time.Time
}
