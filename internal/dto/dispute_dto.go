package dto

import (
	"time"

	"github.com/google/uuid"
)

type CustomerRespondRequest struct {
	ViolationId uuid.UUID
	Action      string `json:"action" validate:"required,oneof=accept reject"`
	Notes       string `json:"notes" validate:"required_if=Action reject"`
}

type CustomerRespondResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type EscalateDisputeRequest struct {
	ViolationId uuid.UUID
	Reason      string `json:"reason" validate:"required"`
}

type EscalateDisputeResponse struct {
	Id uuid.UUID `json:"id"`
}

type DisputeMessageRequest struct {
	ViolationId uuid.UUID
	Message     string `json:"message" validate:"required"`
}

type DisputeMessageResponse struct {
	Id         uuid.UUID `json:"id"`
	SenderId   uuid.UUID `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type ListDisputeMessagesResponse struct {
	Messages []DisputeMessageResponse `json:"messages"`
}
