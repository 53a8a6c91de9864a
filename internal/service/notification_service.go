package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/logger"
	"github.com/daohd2003/FRECS-sub006/internal/pkg/mailer"
	"github.com/daohd2003/FRECS-sub006/internal/repository"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"
	adminEvents "github.com/daohd2003/FRECS-sub006/pkg/admin/events"
	"github.com/daohd2003/FRECS-sub006/pkg/events"
	pktNats "github.com/daohd2003/FRECS-sub006/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// NotificationService turns dispute events into persisted, pushed, and
// mailed notifications. The type registry drives who gets what through
// which channels.
type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	mailer     mailer.IEmailService
	registry   *memory.TypeRegistryCache
	logger     logger.ILogger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		mailer:     emailService,
		registry:   memory.NewTypeRegistryCache(),
		logger:     log,
	}
}

// Start begins listening to the NATS event bus with a durable consumer.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No NATS subscriber configured, notification worker idle", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.HandleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

// StartWatermill consumes the in-process bus instead of NATS. Used for
// single-instance deployments where the watermill publisher is wired in.
func (s *NotificationService) StartWatermill(ctx context.Context, subscriber message.Subscriber) error {
	messages, err := subscriber.Subscribe(ctx, adminEvents.Topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var data map[string]interface{}
			if err := json.Unmarshal(msg.Payload, &data); err != nil {
				s.logger.Warn("NotificationService", "Dropping undecodable event", map[string]interface{}{"error": err.Error()})
				msg.Ack()
				continue
			}
			evt := events.BaseEvent{
				Type:       msg.Metadata.Get(adminEvents.MetadataEventType),
				Data:       data,
				OccurredAt: time.Now(),
			}
			if err := s.HandleEvent(ctx, evt); err != nil {
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()

	s.logger.Info("NotificationService", "Notification service started on in-process bus", nil)
	return nil
}

func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry an "events." prefix; the registry stores bare codes.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	config, err := s.typeConfig(ctx, typeCode)
	if err != nil {
		s.logger.Warn("NotificationService", fmt.Sprintf("Config not found for code: '%s'", typeCode), map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !config.IsActive {
		return nil
	}

	if config.TargetType == "BROADCAST" {
		// Push only; a broadcast saved per user would flood the inbox table.
		notif := s.buildNotification(uuid.Nil, config, event)
		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	recipients, err := s.resolveRecipients(ctx, config, event)
	if err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error resolving recipients for %s", event.EventType()), map[string]interface{}{"error": err})
		return err // the bus will retry
	}

	for _, userID := range recipients {
		notif := s.buildNotification(userID, config, event)

		if err := s.repo.CreateNotification(ctx, &notif); err != nil {
			s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
			continue
		}

		if s.delivery != nil {
			s.delivery.Send(userID, notif)
		}
		if s.channelEnabled(config, "email") {
			s.sendEmail(ctx, userID, notif)
		}
	}

	return nil
}

// typeConfig reads the registry row through the cache.
func (s *NotificationService) typeConfig(ctx context.Context, code string) (*model.NotificationType, error) {
	if config, ok := s.registry.Get(code); ok {
		return config, nil
	}
	config, err := s.repo.GetNotificationTypeByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	s.registry.Save(config)
	return config, nil
}

func (s *NotificationService) channelEnabled(config *model.NotificationType, channel string) bool {
	var channels []string
	if err := json.Unmarshal(config.Channels, &channels); err != nil {
		return false
	}
	for _, c := range channels {
		if c == channel {
			return true
		}
	}
	return false
}

func (s *NotificationService) sendEmail(ctx context.Context, userID uuid.UUID, notif model.Notification) {
	if s.mailer == nil {
		return
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		return
	}

	actionPath := ""
	var meta map[string]interface{}
	if err := json.Unmarshal(notif.Metadata, &meta); err == nil {
		actionPath, _ = meta["action_url"].(string)
	}

	if err := s.mailer.SendDisputeNotification(user.Email, notif.Title, notif.Message, actionPath); err != nil {
		s.logger.Warn("NotificationService", "Email delivery failed", map[string]interface{}{
			"userId": userID.String(),
			"error":  err.Error(),
		})
	}
}

func (s *NotificationService) resolveRecipients(ctx context.Context, config *model.NotificationType, event events.Event) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID

	switch config.TargetType {
	case "SELF":
		// Dispute events carry the target in "recipient_id".
		if uidStr, ok := event.Payload()["recipient_id"].(string); ok {
			uid, err := uuid.Parse(uidStr)
			if err == nil {
				userIDs = append(userIDs, uid)
			}
		} else {
			s.logger.Warn("NotificationService", fmt.Sprintf("TargetType SELF but no recipient_id found in payload for event %s", event.EventType()), nil)
		}

	case "ADMIN":
		admins, err := s.repo.GetUsersByRole(ctx, "admin")
		if err != nil {
			return nil, err
		}
		for _, u := range admins {
			userIDs = append(userIDs, u.ID)
		}

	case "ROLE":
		users, err := s.repo.GetUsersByRole(ctx, config.TargetRole)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}
	}

	return userIDs, nil
}

func (s *NotificationService) buildNotification(userID uuid.UUID, config *model.NotificationType, event events.Event) model.Notification {
	// Simple template engine over the payload keys.
	msg := config.Template
	payload := event.Payload()

	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		valStr := fmt.Sprintf("%v", v)
		msg = strings.ReplaceAll(msg, placeholder, valStr)
	}

	var actorID *uuid.UUID
	if actorStr, ok := payload["actor_id"].(string); ok {
		if aid, err := uuid.Parse(actorStr); err == nil {
			actorID = &aid
		}
	}

	entityType := ""
	var entityID *uuid.UUID
	if et, ok := payload["entity_type"].(string); ok {
		entityType = et
	}
	if eidStr, ok := payload["entity_id"].(string); ok {
		if eid, err := uuid.Parse(eidStr); err == nil {
			entityID = &eid
		}
	}

	var orderID *uuid.UUID
	if oidStr, ok := payload["order_id"].(string); ok {
		if oid, err := uuid.Parse(oidStr); err == nil {
			orderID = &oid
		}
	}

	metaMap := make(map[string]interface{})
	for k, v := range payload {
		metaMap[k] = v
	}
	if entityType != "" && entityID != nil {
		metaMap["action_url"] = fmt.Sprintf("/%ss/%s", entityType, entityID.String())
	}
	metaJSON, _ := json.Marshal(metaMap)

	return model.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		TypeCode:   config.Code,
		Title:      config.DisplayName,
		Message:    msg,
		Metadata:   datatypes.JSON(metaJSON),
		EntityType: entityType,
		EntityID:   entityID,
		OrderID:    orderID,
		CreatedAt:  time.Now(),
		IsRead:     false,
	}
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
