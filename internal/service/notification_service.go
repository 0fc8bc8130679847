package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"monarch-crm-be/internal/model"
	"monarch-crm-be/internal/pkg/logger"
	"monarch-crm-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	delivery  NotificationDelivery
	logger    logger.ILogger
}

func NewNotificationService(pubSub *gochannel.GoChannel, topicName string, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		pubSub:    pubSub,
		topicName: topicName,
		delivery:  delivery,
		logger:    log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	s.logger.Info("NotificationService", "Notification service started", map[string]interface{}{"topic": s.topicName})
	return nil
}

func (s *NotificationService) processMessage(msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		s.logger.Warn("NotificationService", "Dropping malformed event payload", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	notification, ok := s.buildNotification(envelope)
	if !ok {
		msg.Ack()
		return
	}

	s.delivery.Broadcast(notification)
	msg.Ack()
}

func (s *NotificationService) buildNotification(envelope eventEnvelope) (model.Notification, bool) {
	leadName, _ := envelope.Data["lead_name"].(string)

	var title, text string
	switch envelope.Type {
	case events.TypeCallStatus:
		status, _ := envelope.Data["status"].(string)
		title = "Live Call Update"
		text = fmt.Sprintf("Call with %s is now %s", leadName, status)
		if errMsg, _ := envelope.Data["error"].(string); errMsg != "" {
			text = fmt.Sprintf("Call with %s failed: %s", leadName, errMsg)
		}
	case events.TypeCampaignSent:
		title = "Campaign Dispatched"
		text = fmt.Sprintf("Outreach email queued for %s", leadName)
	case events.TypeSiteCreated:
		title = "Portfolio Published"
		text = fmt.Sprintf("Private portfolio generated for %s", leadName)
	default:
		s.logger.Info("NotificationService", fmt.Sprintf("No notification mapping for event '%s'", envelope.Type), nil)
		return model.Notification{}, false
	}

	return model.Notification{
		ID:        uuid.New(),
		TypeCode:  envelope.Type,
		Title:     title,
		Message:   text,
		Metadata:  envelope.Data,
		CreatedAt: time.Now(),
	}, true
}
