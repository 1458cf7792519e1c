package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marketplace_escrow/internal/adapter/persistence/repository"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"
	mock_interfaces "marketplace_escrow/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	customer   = entities.Actor{UserID: "cust-1", Role: entities.RoleCustomer}
	stranger   = entities.Actor{UserID: "cust-2", Role: entities.RoleCustomer}
	provider   = entities.Actor{UserID: "prov-1", Role: entities.RoleProvider}
	admin      = entities.Actor{UserID: "admin-1", Role: entities.RoleAdmin}
	webhook    = entities.SystemActor("payments-webhook")
	fixedStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock { return &testClock{now: fixedStart} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// eventSink records published events.
type eventSink struct {
	mu     sync.Mutex
	events []entities.Event
}

func (s *eventSink) ofType(t entities.EventType) []entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entities.Event
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	db         *gorm.DB
	store      *repository.GormStore
	clock      *testClock
	gateway    *mock_interfaces.MockIPaymentGateway
	publisher  *mock_interfaces.MockIEventPublisher
	events     *eventSink
	opts       []Option
	drafts     *DraftUseCase
	escrows    *EscrowUseCase
	finalize   *FinalizeUseCase
	settlement *SettlementUseCase
	hours      *HoursUseCase
	storno     *StornoUseCase
}

// newFixture wires every use case on an in-memory SQLite store.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t, ":memory:")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return newFixtureOn(t, db)
}

// newSharedFixture uses a file-backed WAL database, so concurrent transactions
// run on separate connections and really conflict.
func newSharedFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "escrow.db") + "?_journal_mode=WAL&_busy_timeout=2000"
	db := openTestDB(t, dsn)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(4)
	return newFixtureOn(t, db)
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newFixtureOn(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	store := repository.NewGormStore(db, zap.NewNop())
	require.NoError(t, store.AutoMigrate())

	ctrl := gomock.NewController(t)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	publisher := mock_interfaces.NewMockIEventPublisher(ctrl)
	sink := &eventSink{}
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, events ...entities.Event) error {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		sink.events = append(sink.events, events...)
		return nil
	}).AnyTimes()

	clock := newTestClock()
	opts := []Option{
		WithClock(clock.Now),
		WithSettings(Settings{TxBaseBackoff: time.Millisecond}),
	}
	return &fixture{
		db:         db,
		store:      store,
		clock:      clock,
		gateway:    gateway,
		publisher:  publisher,
		events:     sink,
		opts:       opts,
		drafts:     NewDraftUseCase(store, opts...),
		escrows:    NewEscrowUseCase(store, opts...),
		finalize:   NewFinalizeUseCase(store, publisher, opts...),
		settlement: NewSettlementUseCase(store, publisher, opts...),
		hours:      NewHoursUseCase(store, gateway, publisher, opts...),
		storno:     NewStornoUseCase(store, gateway, publisher, opts...),
	}
}

// interleavingStore runs competitor once, right before the first write of the
// first transaction, after that transaction has taken its reads.
type interleavingStore struct {
	interfaces.IStore
	once       sync.Once
	competitor func()
	attempts   atomic.Int32
}

func (s *interleavingStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.ITx) error) error {
	s.attempts.Add(1)
	return s.IStore.RunInTransaction(ctx, func(ctx context.Context, tx interfaces.ITx) error {
		return fn(ctx, &interleavingTx{ITx: tx, store: s})
	})
}

type interleavingTx struct {
	interfaces.ITx
	store *interleavingStore
}

func (t *interleavingTx) beforeWrite() {
	t.store.once.Do(t.store.competitor)
}

func (t *interleavingTx) PutDraft(ctx context.Context, d *entities.Draft) error {
	t.beforeWrite()
	return t.ITx.PutDraft(ctx, d)
}

func (t *interleavingTx) PutEscrow(ctx context.Context, e *entities.Escrow) error {
	t.beforeWrite()
	return t.ITx.PutEscrow(ctx, e)
}

func (t *interleavingTx) PutOrder(ctx context.Context, o *entities.Order) error {
	t.beforeWrite()
	return t.ITx.PutOrder(ctx, o)
}

func (t *interleavingTx) PutTimeEntry(ctx context.Context, e *entities.TimeEntry) error {
	t.beforeWrite()
	return t.ITx.PutTimeEntry(ctx, e)
}

func (t *interleavingTx) PutStornoRequest(ctx context.Context, r *entities.StornoRequest) error {
	t.beforeWrite()
	return t.ITx.PutStornoRequest(ctx, r)
}

func (t *interleavingTx) PutProviderStats(ctx context.Context, s *entities.ProviderStats) error {
	t.beforeWrite()
	return t.ITx.PutProviderStats(ctx, s)
}

func testDraft(id string) entities.Draft {
	return entities.Draft{
		ID:               id,
		Category:         "plumbing",
		Subcategory:      "leak",
		CustomerID:       customer.UserID,
		ProviderID:       provider.UserID,
		JobDateFrom:      fixedStart.Add(24 * time.Hour),
		JobDateTo:        fixedStart.Add(24 * time.Hour),
		JobDurationHours: 4,
		PriceAmount:      10000,
		Currency:         "EUR",
		BuyerServiceFee:  500,
		SellerCommission: 1000,
	}
}

// paidOrder creates a draft and finalizes it, returning the order id.
func (f *fixture) paidOrder(t *testing.T, draftID string) string {
	t.Helper()
	ctx := context.Background()
	_, err := f.drafts.CreateDraft(ctx, customer, testDraft(draftID))
	require.NoError(t, err)
	res, err := f.finalize.Finalize(ctx, webhook, draftID, "")
	require.NoError(t, err)
	require.True(t, res.Created)
	return res.OrderID
}

// paidOrderWithEscrow also records a funded escrow for the payment.
func (f *fixture) paidOrderWithEscrow(t *testing.T, draftID string) (string, entities.Escrow) {
	t.Helper()
	ctx := context.Background()
	_, err := f.drafts.CreateDraft(ctx, customer, testDraft(draftID))
	require.NoError(t, err)
	escrowID := "esc-" + draftID
	_, err = f.escrows.CreateEscrow(ctx, entities.Escrow{ID: escrowID, Amount: 10500, Currency: "EUR"})
	require.NoError(t, err)
	escrow, err := f.escrows.MarkFunded(ctx, escrowID, entities.EscrowStatusFunded, fmt.Sprintf("mp-%s", draftID))
	require.NoError(t, err)
	res, err := f.finalize.Finalize(ctx, webhook, draftID, escrowID)
	require.NoError(t, err)
	return res.OrderID, escrow
}

func (f *fixture) order(t *testing.T, id string) entities.Order {
	t.Helper()
	o, err := f.settlement.GetOrder(context.Background(), admin, id)
	require.NoError(t, err)
	return o
}

func (f *fixture) entry(t *testing.T, orderID, entryID string) entities.TimeEntry {
	t.Helper()
	var out entities.TimeEntry
	require.NoError(t, f.store.RunInTransaction(context.Background(), func(ctx context.Context, tx interfaces.ITx) error {
		var err error
		out, err = tx.GetTimeEntry(ctx, orderID, entryID)
		return err
	}))
	return out
}

func (f *fixture) countOrders(t *testing.T, draftID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table("orders").Where("source_draft_id = ?", draftID).Count(&n).Error)
	return n
}

func approvedCapture(id string) interfaces.ProviderResult {
	return interfaces.ProviderResult{ProviderPaymentID: id, ProviderStatus: "approved"}
}
