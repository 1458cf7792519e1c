package interfaces

import (
	"context"
	"errors"
	"time"

	"marketplace_escrow/internal/domain/entities"
)

// ErrTxConflict is returned by a store when a transaction lost an optimistic
// concurrency race (a record changed after it was read, or a record that must
// not exist was created concurrently). The whole unit of work may be retried.
var ErrTxConflict = errors.New("transaction conflict")

// IStore abstracts the transactional persistence of the settlement engine.
//
// Every multi-entity mutation runs through RunInTransaction:
//   - reads inside fn are consistent and remember the record version
//   - writes are conditioned on that version (or on non-existence for new records)
//   - either every write of fn is applied or none is
//
// If fn returns an error nothing is written and the error is returned as-is.
type IStore interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx ITx) error) error

	// ListClearingDue returns orders still in payment_received_clearing whose
	// clearing period ended at or before now. The result is a candidate list only;
	// callers must re-read each order inside a transaction before acting on it.
	ListClearingDue(ctx context.Context, now time.Time, limit int) ([]entities.Order, error)
	ListStornoRequestsByStatus(ctx context.Context, status entities.StornoStatus, limit int) ([]entities.StornoRequest, error)
}

// ITx is the unit of work handed to RunInTransaction.
//
// Getters return the zero value (empty ID) when the record does not exist.
// Put* creates the record when Version is 0 and otherwise updates it
// conditioned on Version; on success the in-memory Version is advanced.
type ITx interface {
	GetDraft(ctx context.Context, id string) (entities.Draft, error)
	GetEscrow(ctx context.Context, id string) (entities.Escrow, error)
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	GetTimeEntry(ctx context.Context, orderID, entryID string) (entities.TimeEntry, error)
	ListTimeEntriesByOrder(ctx context.Context, orderID string) ([]entities.TimeEntry, error)
	GetStornoRequest(ctx context.Context, id string) (entities.StornoRequest, error)
	GetProviderStats(ctx context.Context, providerID string) (entities.ProviderStats, error)

	PutDraft(ctx context.Context, d *entities.Draft) error
	PutEscrow(ctx context.Context, e *entities.Escrow) error
	PutOrder(ctx context.Context, o *entities.Order) error
	PutTimeEntry(ctx context.Context, e *entities.TimeEntry) error
	PutStornoRequest(ctx context.Context, r *entities.StornoRequest) error
	PutProviderStats(ctx context.Context, s *entities.ProviderStats) error
}
