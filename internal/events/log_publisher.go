package events

import (
	"context"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/wire-transfer-simulator/internal/interfaces"
)

// LogPublisher writes lifecycle events to the log. It stands in for a broker
// when none is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, key string, event any) error {
	p.logger.Debug("lifecycle event",
		zap.String("key", key),
		zap.Any("event", event))
	return nil
}

var _ interfaces.EventPublisher = (*LogPublisher)(nil)
