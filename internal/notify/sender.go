// Package notify renders lead notifications and delivers them to the operator channel.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// LogSender stands in when no channel is configured; it only logs.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender returns a Sender that writes messages to the log.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs text at debug level.
func (s *LogSender) Send(_ context.Context, text string) error {
	s.logger.Debug("notification channel not configured; message logged only", zap.String("text", text))
	return nil
}
