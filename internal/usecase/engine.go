package usecase

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// engine bundles what every settlement use case needs: the transactional store,
// the event sink, tuning and a clock.
type engine struct {
	store     interfaces.IStore
	publisher interfaces.IEventPublisher
	settings  Settings
	logger    *zap.Logger
	now       Clock
}

// Option customizes a use case at construction.
type Option func(*engine)

func WithClock(c Clock) Option {
	return func(e *engine) { e.now = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *engine) { e.logger = l }
}

func WithSettings(s Settings) Option {
	return func(e *engine) { e.settings = s }
}

func newEngine(store interfaces.IStore, publisher interfaces.IEventPublisher, opts ...Option) engine {
	e := engine{
		store:     store,
		publisher: publisher,
		settings:  DefaultSettings(),
		logger:    zap.NewNop(),
		now:       systemClock,
	}
	for _, opt := range opts {
		opt(&e)
	}
	e.settings = e.settings.withDefaults()
	return e
}

// runTx executes fn as one transaction and retries the whole read-modify-write
// when the store reports an optimistic concurrency conflict. fn must reset any
// state it captures, it can run several times.
func (e engine) runTx(ctx context.Context, op string, fn func(ctx context.Context, tx interfaces.ITx) error) error {
	backoff := e.settings.TxBaseBackoff
	var err error
	for attempt := 1; attempt <= e.settings.TxMaxAttempts; attempt++ {
		err = e.store.RunInTransaction(ctx, fn)
		if !errors.Is(err, interfaces.ErrTxConflict) {
			return err
		}
		e.logger.Warn("["+op+"][usecase] transaction conflict",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.settings.TxMaxAttempts),
			zap.Error(err))
		if attempt == e.settings.TxMaxAttempts {
			break
		}
		wait := backoff/2 + rand.N(backoff/2+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		backoff *= 2
	}
	return &Error{Kind: ErrTransientStoreConflict, Msg: op + " lost a concurrent update, please retry", Err: err}
}

func (e engine) publish(ctx context.Context, events ...entities.Event) {
	if e.publisher == nil || len(events) == 0 {
		return
	}
	if err := e.publisher.Publish(ctx, events...); err != nil {
		e.logger.Error("[events][usecase] publish failed", zap.Int("count", len(events)), zap.Error(err))
	}
}

func newEvent(t entities.EventType, orderID string, now time.Time, payload map[string]any) entities.Event {
	return entities.Event{
		ID:         uuid.NewString(),
		Type:       t,
		OrderID:    orderID,
		Payload:    payload,
		OccurredAt: now,
	}
}
