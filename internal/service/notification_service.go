package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/notes-service/internal/config"
	"github.com/spec-kit/notes-service/internal/events"
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
	n.dispatcher.Subscribe(events.EventNoteCreated, n.handleNoteCreated)
	n.dispatcher.Subscribe(events.EventNoteDeleted, n.handleNoteDeleted)
	n.dispatcher.Subscribe(events.EventPlanChanged, n.handlePlanChanged)
}

func (n *NotificationService) handleNoteCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("NoteCreated",
		zap.String("tenant_id", event.TenantID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleNoteDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("NoteDeleted",
		zap.String("tenant_id", event.TenantID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePlanChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("PlanChanged",
		zap.String("tenant_id", event.TenantID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	// Stub: a real delivery would POST the event to cfg.WebhookURL.
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("type", string(event.Type)))
}
