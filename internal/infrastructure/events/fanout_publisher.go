package events

import (
	"context"
	"errors"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"
)

var _ interfaces.IEventPublisher = FanoutPublisher(nil)

// FanoutPublisher hands events to every sink. A failing sink does not stop the others.
type FanoutPublisher []interfaces.IEventPublisher

func (f FanoutPublisher) Publish(ctx context.Context, events ...entities.Event) error {
	if len(events) == 0 {
		return nil
	}
	var errs []error
	for _, sink := range f {
		if err := sink.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
