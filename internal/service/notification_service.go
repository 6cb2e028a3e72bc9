package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventLeadCreated, n.handleLeadCreated)
	n.dispatcher.Subscribe(events.EventUserStatusChanged, n.handleUserStatusChanged)
}

// handleLeadCreated logs the lead id only; contact details stay out of logs.
func (n *NotificationService) handleLeadCreated(ctx context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID)}
	if payload, ok := event.Payload.(events.LeadCreatedPayload); ok {
		fields = append(fields, zap.Int64("lead_id", payload.LeadID))
	}
	n.logger.Info("LeadCreated", fields...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserStatusChanged(_ context.Context, event events.Event) error {
	fields := []zap.Field{zap.String("event_id", event.ID)}
	if payload, ok := event.Payload.(events.UserStatusChangedPayload); ok {
		fields = append(fields, zap.Int64("user_id", payload.UserID), zap.Bool("activo", payload.Active))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.Int64("actor_id", *event.ActorID))
	}
	n.logger.Info("UserStatusChanged", fields...)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.LeadsEmailTo) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("to", n.cfg.LeadsEmailTo),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
