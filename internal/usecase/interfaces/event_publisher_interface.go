package interfaces

import (
	"context"

	"marketplace_escrow/internal/domain/entities"
)

// IEventPublisher hands committed domain events to notification collaborators.
// Publishing happens after the transaction commits; a failure is logged by the
// caller and never rolls the state change back.
type IEventPublisher interface {
	Publish(ctx context.Context, events ...entities.Event) error
}
