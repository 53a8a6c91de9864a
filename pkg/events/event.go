package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "VIOLATION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event codes emitted by the dispute core. Each code doubles as the
// notification-type registry key.
const (
	TypeViolationCreated     = "VIOLATION_CREATED"
	TypeViolationResubmitted = "VIOLATION_RESUBMITTED"
	TypeCustomerAccepted     = "CUSTOMER_ACCEPTED"
	TypeCustomerRejected     = "CUSTOMER_REJECTED"
	TypeDisputeEscalated     = "DISPUTE_ESCALATED"
	TypeDisputeMessage       = "DISPUTE_MESSAGE"
	TypeIssueResolved        = "ISSUE_RESOLVED"
	TypeRefundInitiated      = "REFUND_INITIATED"
	TypeRefundCompleted      = "REFUND_COMPLETED"
	TypeRefundFailed         = "REFUND_FAILED"
)

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
