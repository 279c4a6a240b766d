package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/leads-service/internal/config"
	"github.com/spec-kit/leads-service/internal/events"
	"github.com/spec-kit/leads-service/internal/notify"
	"github.com/spec-kit/leads-service/internal/observability"
	"github.com/spec-kit/leads-service/internal/service"
)

// NotificationWorker owns the background pool that delivers operator notifications.
type NotificationWorker struct {
	dispatcher *events.AsyncDispatcher
	logger     *zap.Logger
}

// StartNotificationWorker starts the dispatch pool and registers notification handlers.
// Without Telegram credentials messages are only logged.
func StartNotificationWorker(cfg config.NotificationConfig, logger *zap.Logger, metrics *observability.Metrics) *NotificationWorker {
	var sender notify.Sender
	if cfg.Enabled() {
		sender = notify.NewTelegramSender(cfg.TelegramAPIBaseURL, cfg.TelegramBotToken, cfg.TelegramChatID, cfg.Timeout())
	} else {
		logger.Warn("telegram not configured; notifications will only be logged")
		sender = notify.NewLogSender(logger)
	}
	return StartWithSender(cfg, sender, logger, metrics)
}

// StartWithSender is StartNotificationWorker with an explicit sender.
func StartWithSender(cfg config.NotificationConfig, sender notify.Sender, logger *zap.Logger, metrics *observability.Metrics) *NotificationWorker {
	dispatcher := events.NewAsyncDispatcher(cfg.Workers, cfg.QueueSize, logger)
	service.NewNotificationService(dispatcher, sender, logger, metrics, cfg.Timeout()).RegisterHandlers()
	logger.Info("notification worker started", zap.Int("workers", cfg.Workers), zap.Int("queue_size", cfg.QueueSize))
	return &NotificationWorker{dispatcher: dispatcher, logger: logger}
}

// Dispatcher is the hand-off point for publishers.
func (w *NotificationWorker) Dispatcher() events.Dispatcher {
	return w.dispatcher
}

// Stop waits for queued notifications until ctx ends.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	if err := w.dispatcher.Close(ctx); err != nil {
		w.logger.Warn("notification queue not drained", zap.Error(err))
		return err
	}
	w.logger.Info("notification worker stopped")
	return nil
}
