package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/events"
	"github.com/spec-kit/leads-service/internal/notify"
	"github.com/spec-kit/leads-service/internal/observability"
)

// NotificationService delivers operator notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     notify.Sender
	logger     *zap.Logger
	metrics    *observability.Metrics
	timeout    time.Duration
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender notify.Sender, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		metrics:    metrics,
		timeout:    timeout,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventQuoteCreated, n.handleQuoteCreated)
}

// handleQuoteCreated never returns an error; failed deliveries are logged and dropped.
func (n *NotificationService) handleQuoteCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.QuoteCreatedPayload)
	if !ok {
		n.metrics.RecordNotification(observability.OutcomeSkipped)
		n.logger.Error("unexpected payload", zap.String("event_id", event.ID), zap.String("payload_type", fmt.Sprintf("%T", event.Payload)))
		return nil
	}
	if n.sender == nil {
		n.metrics.RecordNotification(observability.OutcomeSkipped)
		return nil
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err := n.sender.Send(ctx, notify.FormatLead(payload.Lead)); err != nil {
		n.metrics.RecordNotification(observability.OutcomeFailure)
		n.logger.Warn("quote notification failed", zap.String("quote_id", event.EntityID), zap.Error(err))
		return nil
	}
	n.metrics.RecordNotification(observability.OutcomeSuccess)
	n.logger.Info("quote notification sent", zap.String("quote_id", event.EntityID))
	return nil
}
