package entities

import "time"

// EventType names a domain event consumed by notification collaborators.
type EventType string

const (
	EventOrderCreated     EventType = "order.created"
	EventOrderDisputed    EventType = "order.disputed"
	EventOrderReleased    EventType = "order.released"
	EventOrderRefunded    EventType = "order.refunded"
	EventHoursTransferred EventType = "hours.transferred"
	EventProviderBlocked  EventType = "provider.blocked"
	EventStornoDecided    EventType = "storno.decided"
)

// Event is a domain event emitted after a transaction commits.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	OrderID    string         `json:"order_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
