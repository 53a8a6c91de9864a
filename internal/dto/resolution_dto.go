package dto

import (
	"time"

	"github.com/google/uuid"
)

type ResolveDisputeRequest struct {
	ViolationId        uuid.UUID
	ResolutionType     string  `json:"resolution_type" validate:"required,oneof=UPHOLD_CLAIM REJECT_CLAIM COMPROMISE"`
	FineAmount         float64 `json:"fine_amount" validate:"gte=0"`
	CompensationAmount float64 `json:"compensation_amount" validate:"gte=0"`
	Reason             string  `json:"reason" validate:"required,min=10,max=1000"`
}

type ResolutionResponse struct {
	Id                 uuid.UUID  `json:"id"`
	ViolationId        uuid.UUID  `json:"violation_id"`
	ResolutionType     string     `json:"resolution_type"`
	FineAmount         float64    `json:"fine_amount"`
	CompensationAmount float64    `json:"compensation_amount"`
	Reason             string     `json:"reason,omitempty"`
	Status             string     `json:"status"`
	ProcessedByAdminId *uuid.UUID `json:"processed_by_admin_id,omitempty"`
	ProcessedAt        *time.Time `json:"processed_at"`
	CreatedAt          time.Time  `json:"created_at"`
}

// DisputeQueueItem is one entry in the admin's escalated-dispute queue.
type DisputeQueueItem struct {
	Violation ViolationResponse        `json:"violation"`
	Messages  []DisputeMessageResponse `json:"messages,omitempty"`
}

type ListDisputeQueueResponse struct {
	Disputes []DisputeQueueItem `json:"disputes"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}
