package events

import (
	"context"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	pkgEvents "github.com/daohd2003/FRECS-sub006/pkg/events"
	pktNats "github.com/daohd2003/FRECS-sub006/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for the dispute workflow. Every
// transition notifies exactly one counterparty; failures are logged and
// swallowed so a financial transition never rolls back on a flaky bus.
type Publisher interface {
	PublishViolationCreated(ctx context.Context, violationID, orderID, customerID, providerID uuid.UUID, violationType string, penalty float64)
	PublishViolationResubmitted(ctx context.Context, violationID, orderID, customerID uuid.UUID, penalty float64)
	PublishCustomerResponded(ctx context.Context, violationID, orderID, providerID uuid.UUID, accepted bool, notes string)
	PublishDisputeEscalated(ctx context.Context, violationID, orderID, actorID uuid.UUID, role, reason string)
	PublishDisputeMessage(ctx context.Context, violationID, orderID, senderID, recipientID uuid.UUID, senderRole string)
	PublishIssueResolved(ctx context.Context, violationID, orderID, customerID, providerID uuid.UUID, resolutionType string, fine, compensation float64)
	PublishRefundInitiated(ctx context.Context, refundID, orderID, customerID uuid.UUID, amount float64)
	PublishRefundProcessed(ctx context.Context, refundID, orderID, customerID uuid.UUID, completed bool, amount float64, externalRef string)
}

// NatsPublisher implements Publisher using NATS JetStream.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishViolationCreated notifies the customer that a violation was filed
// against their order.
func (p *NatsPublisher) PublishViolationCreated(ctx context.Context, violationID, orderID, customerID, providerID uuid.UUID, violationType string, penalty float64) {
	p.emit(ctx, pkgEvents.TypeViolationCreated, map[string]interface{}{
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

func (p *NatsPublisher) PublishViolationResubmitted(ctx context.Context, violationID, orderID, customerID uuid.UUID, penalty float64) {
	p.emit(ctx, pkgEvents.TypeViolationResubmitted, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"recipient_id": customerID.String(),
		"penalty":      penalty,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

// PublishCustomerResponded notifies the provider of the customer's decision.
func (p *NatsPublisher) PublishCustomerResponded(ctx context.Context, violationID, orderID, providerID uuid.UUID, accepted bool, notes string) {
	eventType := pkgEvents.TypeCustomerRejected
	if accepted {
		eventType = pkgEvents.TypeCustomerAccepted
	}
	p.emit(ctx, eventType, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"recipient_id": providerID.String(),
		"accepted":     accepted,
		"notes":        notes,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

// PublishDisputeEscalated surfaces the dispute in the admin queue.
func (p *NatsPublisher) PublishDisputeEscalated(ctx context.Context, violationID, orderID, actorID uuid.UUID, role, reason string) {
	p.emit(ctx, pkgEvents.TypeDisputeEscalated, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"actor_id":     actorID.String(),
		"role":         role,
		"reason":       reason,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

// PublishDisputeMessage nudges the counterparty that the thread moved.
func (p *NatsPublisher) PublishDisputeMessage(ctx context.Context, violationID, orderID, senderID, recipientID uuid.UUID, senderRole string) {
	p.emit(ctx, pkgEvents.TypeDisputeMessage, map[string]interface{}{
		"violation_id": violationID.String(),
		"order_id":     orderID.String(),
		"recipient_id": recipientID.String(),
		"actor_id":     senderID.String(),
		"sender_role":  senderRole,
		"entity_type":  "violation",
		"entity_id":    violationID.String(),
	})
}

func (p *NatsPublisher) PublishIssueResolved(ctx context.Context, violationID, orderID, customerID, providerID uuid.UUID, resolutionType string, fine, compensation float64) {
	// Both parties get notified; the worker fans out on recipient ids.
	p.emit(ctx, pkgEvents.TypeIssueResolved, map[string]interface{}{
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

func (p *NatsPublisher) PublishRefundInitiated(ctx context.Context, refundID, orderID, customerID uuid.UUID, amount float64) {
	p.emit(ctx, pkgEvents.TypeRefundInitiated, map[string]interface{}{
		"refund_id":    refundID.String(),
		"order_id":     orderID.String(),
		"recipient_id": customerID.String(),
		"amount":       amount,
		"entity_type":  "deposit_refund",
		"entity_id":    refundID.String(),
	})
}

func (p *NatsPublisher) PublishRefundProcessed(ctx context.Context, refundID, orderID, customerID uuid.UUID, completed bool, amount float64, externalRef string) {
	eventType := pkgEvents.TypeRefundFailed
	if completed {
		eventType = pkgEvents.TypeRefundCompleted
	}
	p.emit(ctx, eventType, map[string]interface{}{
		"refund_id":    refundID.String(),
		"order_id":     orderID.String(),
		"recipient_id": customerID.String(),
		"amount":       amount,
		"external_ref": externalRef,
		"entity_type":  "deposit_refund",
		"entity_id":    refundID.String(),
	})
}
