package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	pkgEvents "github.com/daohd2003/FRECS-sub006/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const Topic = "dispute-events"

// MetadataEventType carries the event code on the watermill message so
// consumers do not need to sniff the payload.
const MetadataEventType = "event_type"

// WatermillPublisher implements Publisher over an in-process watermill
// pub/sub. Used when no NATS broker is configured (single-instance and
// test deployments).
type WatermillPublisher struct {
	publisher message.Publisher
	logger    logger.ILogger
}

func NewWatermillPublisher(publisher message.Publisher, logger logger.ILogger) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *WatermillPublisher) emit(eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		p.logger.Error("EVENTS", "Failed to marshal "+eventType+" event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventType, eventType)

	if err := p.publisher.Publish(Topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *WatermillPublisher) PublishViolationCreated(ctx context.Context, violationID, orderID, customerID, providerID uuid.UUID, violationType string, penalty float64) {
	p.emit(pkgEvents.TypeViolationCreated, map[string]interface{}{
		"violation_id":   violationID.String(),
		"order_id":       orderID.String(),
		"recipient_id":   customerID.String(),
		"actor_id":       providerID.String(),
		"violation_type": violationType,
		"penalty":        penalty,
		"entity_type":    "violation",
		"entity_id":      violationID.String(),
	})
}

func (p *WatermillPublisher) PublishViolationResubmitted(ctx context.Context, violationID, orderID, customerID uuid.UUID, penalty float64) {
	p.emit(pkgEvents.TypeViolationResubmitted, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"recipient_id": customerID.String(),
		"penalty":      penalty,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

func (p *WatermillPublisher) PublishCustomerResponded(ctx context.Context, violationID, orderID, providerID uuid.UUID, accepted bool, notes string) {
	eventType := pkgEvents.TypeCustomerRejected
	if accepted {
		eventType = pkgEvents.TypeCustomerAccepted
	}
	p.emit(eventType, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"recipient_id": providerID.String(),
		"accepted":     accepted,
		"notes":        notes,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

func (p *WatermillPublisher) PublishDisputeEscalated(ctx context.Context, violationID, orderID, actorID uuid.UUID, role, reason string) {
	p.emit(pkgEvents.TypeDisputeEscalated, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"actor_id":     actorID.String(),
		"role":         role,
		"reason":       reason,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

func (p *WatermillPublisher) PublishDisputeMessage(ctx context.Context, violationID, orderID, senderID, recipientID uuid.UUID, senderRole string) {
	p.emit(pkgEvents.TypeDisputeMessage, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"recipient_id": recipientID.String(),
		"actor_id":     senderID.String(),
		"sender_role":  senderRole,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

func (p *WatermillPublisher) PublishIssueResolved(ctx context.Context, violationID, orderID, customerID, providerID uuid.UUID, resolutionType string, fine, compensation float64) {
	p.emit(pkgEvents.TypeIssueResolved, map[string]interface{}{
		"violation_id":    violationID.String(),
		"order_id":        orderID.String(),
		"recipient_id":    customerID.String(),
		"provider_id":     providerID.String(),
		"resolution_type": resolutionType,
		"fine":            fine,
		"compensation":    compensation,
		"entity_type":     "violation",
		"entity_id":       violationID.String(),
	})
}

func (p *WatermillPublisher) PublishRefundInitiated(ctx context.Context, refundID, orderID, customerID uuid.UUID, amount float64) {
	p.emit(pkgEvents.TypeRefundInitiated, map[string]interface{}{
		"refund_id":    refundID.String(),
		"order_id":     orderID.String(),
		"recipient_id": customerID.String(),
		"amount":       amount,
		"entity_type":  "deposit_refund",
		"entity_id":    refundID.String(),
	})
}

func (p *WatermillPublisher) PublishRefundProcessed(ctx context.Context, refundID, orderID, customerID uuid.UUID, completed bool, amount float64, externalRef string) {
	eventType := pkgEvents.TypeRefundFailed
	if completed {
		eventType = pkgEvents.TypeRefundCompleted
	}
	p.emit(eventType, map[string]interface{}{
		"refund_id":    refundID.String(),
		"order_id":     orderID.String(),
		"recipient_id": customerID.String(),
		"amount":       amount,
		"external_ref": externalRef,
		"entity_type":  "deposit_refund",
		"entity_id":    refundID.String(),
	})
}
