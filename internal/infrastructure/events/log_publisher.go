package events

import (
	"context"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var _ interfaces.IEventPublisher = (*LogPublisher)(nil)

// LogPublisher writes every event as a structured log line.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

func (p *LogPublisher) Publish(_ context.Context, events ...entities.Event) error {
	for _, ev := range events {
		p.logger.Info("[events][publisher] event",
			zap.String("event_id", ev.ID),
			zap.String("type", string(ev.Type)),
			zap.String("order_id", ev.OrderID),
			zap.Time("occurred_at", ev.OccurredAt),
			zap.Any("payload", ev.Payload))
	}
	return nil
}
