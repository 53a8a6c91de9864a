package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// EvidenceUpload carries one uploaded evidence file from the transport
// layer into the service without tying the service to multipart.
type EvidenceUpload struct {
	Filename string
	Content  io.Reader
}

type ViolationInput struct {
	OrderItemId       uuid.UUID `json:"order_item_id" validate:"required"`
	Type              string    `json:"type" validate:"required,oneof=DAMAGED LATE_RETURN NOT_RETURNED"`
	Description       string    `json:"description" validate:"required,min=10,max=2000"`
	DamagePercentage  *float64  `json:"damage_percentage" validate:"omitempty,gte=0,lte=100"`
	PenaltyPercentage float64   `json:"penalty_percentage" validate:"gte=0,lte=100"`
	PenaltyAmount     float64   `json:"penalty_amount" validate:"gte=0"`
}

type CreateViolationsRequest struct {
	OrderId    uuid.UUID
	Violations []ViolationInput `json:"violations" validate:"required,min=1,dive"`

	// Evidence is grouped by position: Evidence[i] belongs to Violations[i].
	Evidence [][]EvidenceUpload `json:"-"`
}

type CreateViolationsResponse struct {
	Ids []uuid.UUID `json:"ids"`
}

type ResubmitViolationRequest struct {
	Id                uuid.UUID
	Type              string   `json:"type" validate:"required,oneof=DAMAGED LATE_RETURN NOT_RETURNED"`
	Description       string   `json:"description" validate:"required,min=10,max=2000"`
	DamagePercentage  *float64 `json:"damage_percentage" validate:"omitempty,gte=0,lte=100"`
	PenaltyPercentage float64  `json:"penalty_percentage" validate:"gte=0,lte=100"`
	PenaltyAmount     float64  `json:"penalty_amount" validate:"gte=0"`

	Evidence []EvidenceUpload `json:"-"`
}

type ResubmitViolationResponse struct {
	Id uuid.UUID `json:"id"`
}

type EvidenceResponse struct {
	Id           uuid.UUID `json:"id"`
	FileUrl      string    `json:"file_url"`
	UploaderRole string    `json:"uploader_role"`
	CreatedAt    time.Time `json:"created_at"`
}

type ViolationResponse struct {
	Id                        uuid.UUID          `json:"id"`
	OrderId                   uuid.UUID          `json:"order_id"`
	OrderItemId               uuid.UUID          `json:"order_item_id"`
	Type                      string             `json:"type"`
	Description               string             `json:"description"`
	DamagePercentage          *float64           `json:"damage_percentage"`
	PenaltyPercentage         float64            `json:"penalty_percentage"`
	PenaltyAmount             float64            `json:"penalty_amount"`
	Status                    string             `json:"status"`
	CustomerNotes             string             `json:"customer_notes,omitempty"`
	CustomerResponseAt        *time.Time         `json:"customer_response_at,omitempty"`
	ProviderEscalationReason  string             `json:"provider_escalation_reason,omitempty"`
	CustomerEscalationReason  string             `json:"customer_escalation_reason,omitempty"`
	Evidence                  []EvidenceResponse `json:"evidence"`
	CreatedAt                 time.Time          `json:"created_at"`
	UpdatedAt                 *time.Time         `json:"updated_at"`
}

type ListViolationsResponse struct {
	Violations []ViolationResponse `json:"violations"`
}
