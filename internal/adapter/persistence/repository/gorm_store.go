package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormStore persists the settlement records in a relational database
// (PostgreSQL in production, SQLite for local runs and tests).
//
// Concurrency model:
//   - transactions run at SERIALIZABLE on PostgreSQL, so rows a transaction only
//     reads are protected as well as the rows it writes
//   - updates are conditioned on the version read earlier (WHERE version = ?)
//   - duplicate keys, serialization failures, deadlocks and SQLite busy/locked
//     errors surface as interfaces.ErrTxConflict
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ interfaces.IStore = (*GormStore)(nil)

func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormStore{db: db, logger: logger}
}

// AutoMigrate creates or updates the tables used by the store.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&draftRow{},
		&escrowRow{},
		&orderRow{},
		&timeEntryRow{},
		&stornoRequestRow{},
		&providerStatsRow{},
	)
}

func (s *GormStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.ITx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(ctx, &gormTx{db: db})
	}, txOptions(s.db.Dialector.Name())...)
	if err == nil || errors.Is(err, interfaces.ErrTxConflict) {
		return err
	}
	if isConflict(err) {
		s.logger.Debug("[store][gorm] transaction conflict", zap.Error(err))
		return fmt.Errorf("%w: %v", interfaces.ErrTxConflict, err)
	}
	return err
}

// txOptions picks the isolation level per dialect. SQLite transactions are
// already serializable.
func txOptions(dialect string) []*sql.TxOptions {
	if dialect == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return nil
}

func (s *GormStore) ListClearingDue(ctx context.Context, now time.Time, limit int) ([]entities.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var rows []orderRow
	err := s.db.WithContext(ctx).
		Where("status = ? AND clearing_ends_at <= ?", string(entities.OrderStatusPaymentReceivedClearing), now.UTC()).
		Order("clearing_ends_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromOrderRow(r))
	}
	return out, nil
}

func (s *GormStore) ListStornoRequestsByStatus(ctx context.Context, status entities.StornoStatus, limit int) ([]entities.StornoRequest, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var rows []stornoRequestRow
	err := s.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.StornoRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromStornoRequestRow(r))
	}
	return out, nil
}

// isConflict reports whether err means a concurrent writer won the race.
func isConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected, pgerrcode.UniqueViolation:
			return true
		}
		return false
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return true
		case sqlite3.ErrConstraint:
			return liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
		}
	}
	return false
}

type gormTx struct {
	db *gorm.DB
}

var _ interfaces.ITx = (*gormTx)(nil)

// take loads one row; a missing row is not an error.
func (t *gormTx) take(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := t.db.WithContext(ctx).Where(query, args...).Take(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// save inserts row when prev is 0, otherwise rewrites it if the stored version
// is still prev. row must already carry the next version.
func (t *gormTx) save(ctx context.Context, row any, prev int64) error {
	if prev == 0 {
		return t.db.WithContext(ctx).Create(row).Error
	}
	res := t.db.WithContext(ctx).Model(row).Where("version = ?", prev).Select("*").Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return interfaces.ErrTxConflict
	}
	return nil
}

func (t *gormTx) GetDraft(ctx context.Context, id string) (entities.Draft, error) {
	var r draftRow
	found, err := t.take(ctx, &r, "id = ?", id)
	if err != nil || !found {
		return entities.Draft{}, err
	}
	return fromDraftRow(r), nil
}

func (t *gormTx) GetEscrow(ctx context.Context, id string) (entities.Escrow, error) {
	var r escrowRow
	found, err := t.take(ctx, &r, "id = ?", id)
	if err != nil || !found {
		return entities.Escrow{}, err
	}
	return fromEscrowRow(r), nil
}

func (t *gormTx) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	var r orderRow
	found, err := t.take(ctx, &r, "id = ?", id)
	if err != nil || !found {
		return entities.Order{}, err
	}
	return fromOrderRow(r), nil
}

func (t *gormTx) GetTimeEntry(ctx context.Context, orderID, entryID string) (entities.TimeEntry, error) {
	var r timeEntryRow
	found, err := t.take(ctx, &r, "order_id = ? AND id = ?", orderID, entryID)
	if err != nil || !found {
		return entities.TimeEntry{}, err
	}
	return fromTimeEntryRow(r), nil
}

func (t *gormTx) ListTimeEntriesByOrder(ctx context.Context, orderID string) ([]entities.TimeEntry, error) {
	var rows []timeEntryRow
	err := t.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.TimeEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromTimeEntryRow(r))
	}
	return out, nil
}

func (t *gormTx) GetStornoRequest(ctx context.Context, id string) (entities.StornoRequest, error) {
	var r stornoRequestRow
	found, err := t.take(ctx, &r, "id = ?", id)
	if err != nil || !found {
		return entities.StornoRequest{}, err
	}
	return fromStornoRequestRow(r), nil
}

func (t *gormTx) GetProviderStats(ctx context.Context, providerID string) (entities.ProviderStats, error) {
	var r providerStatsRow
	found, err := t.take(ctx, &r, "provider_id = ?", providerID)
	if err != nil || !found {
		return entities.ProviderStats{}, err
	}
	return fromProviderStatsRow(r), nil
}

func (t *gormTx) PutDraft(ctx context.Context, d *entities.Draft) error {
	r := toDraftRow(*d)
	r.Version = d.Version + 1
	if err := t.save(ctx, &r, d.Version); err != nil {
		return err
	}
	d.Version = r.Version
	return nil
}

func (t *gormTx) PutEscrow(ctx context.Context, e *entities.Escrow) error {
	r := toEscrowRow(*e)
	r.Version = e.Version + 1
	if err := t.save(ctx, &r, e.Version); err != nil {
		return err
	}
	e.Version = r.Version
	return nil
}

func (t *gormTx) PutOrder(ctx context.Context, o *entities.Order) error {
	r := toOrderRow(*o)
	r.Version = o.Version + 1
	if err := t.save(ctx, &r, o.Version); err != nil {
		return err
	}
	o.Version = r.Version
	return nil
}

func (t *gormTx) PutTimeEntry(ctx context.Context, e *entities.TimeEntry) error {
	r := toTimeEntryRow(*e)
	r.Version = e.Version + 1
	if err := t.save(ctx, &r, e.Version); err != nil {
		return err
	}
	e.Version = r.Version
	return nil
}

func (t *gormTx) PutStornoRequest(ctx context.Context, s *entities.StornoRequest) error {
	r := toStornoRequestRow(*s)
	r.Version = s.Version + 1
	if err := t.save(ctx, &r, s.Version); err != nil {
		return err
	}
	s.Version = r.Version
	return nil
}

func (t *gormTx) PutProviderStats(ctx context.Context, s *entities.ProviderStats) error {
	r := toProviderStatsRow(*s)
	r.Version = s.Version + 1
	if err := t.save(ctx, &r, s.Version); err != nil {
		return err
	}
	s.Version = r.Version
	return nil
}
