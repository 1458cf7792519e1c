package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultDraftsTableName         = "drafts"
	defaultEscrowsTableName        = "escrows"
	defaultOrdersTableName         = "orders"
	defaultTimeEntriesTableName    = "time_entries"
	defaultStornoRequestsTableName = "storno_requests"
	defaultProviderStatsTableName  = "provider_stats"

	ordersClearingIndex = "status-clearing_ends_at-index"
	stornoStatusIndex   = "status-index"

	maxTransactItems = 100
	defaultListLimit = 100
)

// DynamoAPI is the subset of the DynamoDB client used by the store.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// DynamoTables names the tables of the store.
//
// Table requirements:
//   - drafts, escrows, orders, storno_requests: PK id (string)
//   - orders GSI status-clearing_ends_at-index (PK status, SK clearing_ends_at)
//   - storno_requests GSI status-index (PK status)
//   - time_entries: PK order_id, SK id
//   - provider_stats: PK provider_id
type DynamoTables struct {
	Drafts         string
	Escrows        string
	Orders         string
	TimeEntries    string
	StornoRequests string
	ProviderStats  string
}

// DynamoTablesFromEnv resolves table names from *_TABLE variables.
func DynamoTablesFromEnv() DynamoTables {
	return DynamoTables{
		Drafts:         envOr("DRAFTS_TABLE", defaultDraftsTableName),
		Escrows:        envOr("ESCROWS_TABLE", defaultEscrowsTableName),
		Orders:         envOr("ORDERS_TABLE", defaultOrdersTableName),
		TimeEntries:    envOr("TIME_ENTRIES_TABLE", defaultTimeEntriesTableName),
		StornoRequests: envOr("STORNO_REQUESTS_TABLE", defaultStornoRequestsTableName),
		ProviderStats:  envOr("PROVIDER_STATS_TABLE", defaultProviderStatsTableName),
	}
}

func (t DynamoTables) withDefaults() DynamoTables {
	return DynamoTables{
		Drafts:         orDefault(t.Drafts, defaultDraftsTableName),
		Escrows:        orDefault(t.Escrows, defaultEscrowsTableName),
		Orders:         orDefault(t.Orders, defaultOrdersTableName),
		TimeEntries:    orDefault(t.TimeEntries, defaultTimeEntriesTableName),
		StornoRequests: orDefault(t.StornoRequests, defaultStornoRequestsTableName),
		ProviderStats:  orDefault(t.ProviderStats, defaultProviderStatsTableName),
	}
}

// DynamoStore implements the transactional store on DynamoDB.
//
// Inside a transaction every read is a consistent GetItem/Query whose version is
// remembered. Writes are staged and committed with a single TransactWriteItems:
// each Put is conditioned on the version read (or on non-existence for new
// records), and records that were read but not written get a ConditionCheck.
type DynamoStore struct {
	ddb    DynamoAPI
	tables DynamoTables
	logger *zap.Logger
}

var _ interfaces.IStore = (*DynamoStore)(nil)

func NewDynamoStore(ddb DynamoAPI, tables DynamoTables, logger *zap.Logger) *DynamoStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DynamoStore{ddb: ddb, tables: tables.withDefaults(), logger: logger}
}

func (s *DynamoStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.ITx) error) error {
	tx := &dynamoTx{
		store:  s,
		images: map[dynamoKey]map[string]types.AttributeValue{},
		reads:  map[dynamoKey]int64{},
		writes: map[dynamoKey]*stagedPut{},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit(ctx)
}

func (s *DynamoStore) ListClearingDue(ctx context.Context, now time.Time, limit int) ([]entities.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []entities.Order
	var startKey map[string]types.AttributeValue
	for {
		res, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tables.Orders),
			IndexName:              aws.String(ordersClearingIndex),
			KeyConditionExpression: aws.String("#status = :status AND #clearing_ends_at <= :now"),
			ExpressionAttributeNames: map[string]string{
				"#status":           "status",
				"#clearing_ends_at": "clearing_ends_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(entities.OrderStatusPaymentReceivedClearing)},
				":now":    &types.AttributeValueMemberS{Value: formatTime(now)},
			},
			Limit:             aws.Int32(int32(limit - len(out))),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, av := range res.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(av, &it); err != nil {
				return nil, err
			}
			o, err := fromOrderItem(it)
			if err != nil {
				return nil, err
			}
			out = append(out, o)
		}
		if len(res.LastEvaluatedKey) == 0 || len(out) >= limit {
			return out, nil
		}
		startKey = res.LastEvaluatedKey
	}
}

func (s *DynamoStore) ListStornoRequestsByStatus(ctx context.Context, status entities.StornoStatus, limit int) ([]entities.StornoRequest, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []entities.StornoRequest
	var startKey map[string]types.AttributeValue
	for {
		res, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tables.StornoRequests),
			IndexName:              aws.String(stornoStatusIndex),
			KeyConditionExpression: aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(status)},
			},
			Limit:             aws.Int32(int32(limit - len(out))),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, av := range res.Items {
			var it stornoRequestItem
			if err := attributevalue.UnmarshalMap(av, &it); err != nil {
				return nil, err
			}
			r, err := fromStornoRequestItem(it)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		if len(res.LastEvaluatedKey) == 0 || len(out) >= limit {
			return out, nil
		}
		startKey = res.LastEvaluatedKey
	}
}

// isDynamoConflict reports whether a commit lost against a concurrent writer.
func isDynamoConflict(err error) bool {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, r := range canceled.CancellationReasons {
			switch aws.ToString(r.Code) {
			case "ConditionalCheckFailed", "TransactionConflict":
				return true
			}
		}
		return false
	}
	var conflict *types.TransactionConflictException
	if errors.As(err, &conflict) {
		return true
	}
	var condition *types.ConditionalCheckFailedException
	return errors.As(err, &condition)
}

type dynamoKey struct {
	table  string
	pkName string
	pk     string
	skName string
	sk     string
}

func (k dynamoKey) attributes() map[string]types.AttributeValue {
	m := map[string]types.AttributeValue{
		k.pkName: &types.AttributeValueMemberS{Value: k.pk},
	}
	if k.skName != "" {
		m[k.skName] = &types.AttributeValueMemberS{Value: k.sk}
	}
	return m
}

type stagedPut struct {
	item     map[string]types.AttributeValue
	expected int64
}

type dynamoTx struct {
	store *DynamoStore
	// images holds the latest known item per key; a nil image means absent.
	images map[dynamoKey]map[string]types.AttributeValue
	reads  map[dynamoKey]int64
	writes map[dynamoKey]*stagedPut
	order  []dynamoKey
}

var _ interfaces.ITx = (*dynamoTx)(nil)

func versionOf(item map[string]types.AttributeValue) int64 {
	n, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (t *dynamoTx) load(ctx context.Context, key dynamoKey) (map[string]types.AttributeValue, error) {
	if item, ok := t.images[key]; ok {
		return item, nil
	}
	out, err := t.store.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(key.table),
		Key:            key.attributes(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	var item map[string]types.AttributeValue
	if len(out.Item) > 0 {
		item = out.Item
	}
	t.remember(key, item)
	return item, nil
}

func (t *dynamoTx) remember(key dynamoKey, item map[string]types.AttributeValue) {
	if _, seen := t.reads[key]; !seen {
		t.reads[key] = versionOf(item)
	}
	if _, staged := t.writes[key]; !staged {
		t.images[key] = item
	}
}

func (t *dynamoTx) stage(key dynamoKey, item any, prev int64) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	if w, ok := t.writes[key]; ok {
		w.item = av
	} else {
		t.writes[key] = &stagedPut{item: av, expected: prev}
		t.order = append(t.order, key)
	}
	t.images[key] = av
	return nil
}

func (t *dynamoTx) commit(ctx context.Context) error {
	if len(t.writes) == 0 {
		return nil
	}
	items := make([]types.TransactWriteItem, 0, len(t.writes)+len(t.reads))
	for _, key := range t.order {
		w := t.writes[key]
		put := &types.Put{
			TableName: aws.String(key.table),
			Item:      w.item,
		}
		if w.expected == 0 {
			put.ConditionExpression = aws.String("attribute_not_exists(#pk)")
			put.ExpressionAttributeNames = map[string]string{"#pk": key.pkName}
		} else {
			put.ConditionExpression = aws.String("#version = :expected")
			put.ExpressionAttributeNames = map[string]string{"#version": "version"}
			put.ExpressionAttributeValues = map[string]types.AttributeValue{
				":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(w.expected, 10)},
			}
		}
		items = append(items, types.TransactWriteItem{Put: put})
	}
	for key, v := range t.reads {
		if _, written := t.writes[key]; written || v == 0 {
			continue
		}
		items = append(items, types.TransactWriteItem{ConditionCheck: &types.ConditionCheck{
			TableName:                aws.String(key.table),
			Key:                      key.attributes(),
			ConditionExpression:      aws.String("#version = :expected"),
			ExpressionAttributeNames: map[string]string{"#version": "version"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)},
			},
		}})
	}
	if len(items) > maxTransactItems {
		return fmt.Errorf("transaction touches %d items, limit is %d", len(items), maxTransactItems)
	}

	_, err := t.store.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems:      items,
		ClientRequestToken: aws.String(uuid.NewString()),
	})
	if err == nil {
		return nil
	}
	if isDynamoConflict(err) {
		t.store.logger.Debug("[store][dynamodb] transaction canceled", zap.Int("items", len(items)), zap.Error(err))
		return fmt.Errorf("%w: %v", interfaces.ErrTxConflict, err)
	}
	return err
}

func getTyped[I any, E any](ctx context.Context, t *dynamoTx, key dynamoKey, from func(I) (E, error)) (E, error) {
	var zero E
	av, err := t.load(ctx, key)
	if err != nil || av == nil {
		return zero, err
	}
	var it I
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return zero, err
	}
	return from(it)
}

func (t *dynamoTx) idKey(table, id string) dynamoKey {
	return dynamoKey{table: table, pkName: "id", pk: id}
}

func (t *dynamoTx) entryKey(orderID, entryID string) dynamoKey {
	return dynamoKey{table: t.store.tables.TimeEntries, pkName: "order_id", pk: orderID, skName: "id", sk: entryID}
}

func (t *dynamoTx) statsKey(providerID string) dynamoKey {
	return dynamoKey{table: t.store.tables.ProviderStats, pkName: "provider_id", pk: providerID}
}

func (t *dynamoTx) GetDraft(ctx context.Context, id string) (entities.Draft, error) {
	return getTyped(ctx, t, t.idKey(t.store.tables.Drafts, id), fromDraftItem)
}

func (t *dynamoTx) GetEscrow(ctx context.Context, id string) (entities.Escrow, error) {
	return getTyped(ctx, t, t.idKey(t.store.tables.Escrows, id), fromEscrowItem)
}

func (t *dynamoTx) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	return getTyped(ctx, t, t.idKey(t.store.tables.Orders, id), fromOrderItem)
}

func (t *dynamoTx) GetTimeEntry(ctx context.Context, orderID, entryID string) (entities.TimeEntry, error) {
	return getTyped(ctx, t, t.entryKey(orderID, entryID), fromTimeEntryItem)
}

func (t *dynamoTx) GetStornoRequest(ctx context.Context, id string) (entities.StornoRequest, error) {
	return getTyped(ctx, t, t.idKey(t.store.tables.StornoRequests, id), fromStornoRequestItem)
}

func (t *dynamoTx) GetProviderStats(ctx context.Context, providerID string) (entities.ProviderStats, error) {
	return getTyped(ctx, t, t.statsKey(providerID), fromProviderStatsItem)
}

// ListTimeEntriesByOrder queries the order's partition consistently and overlays
// the writes already staged in this transaction.
func (t *dynamoTx) ListTimeEntriesByOrder(ctx context.Context, orderID string) ([]entities.TimeEntry, error) {
	seen := map[dynamoKey]bool{}
	var out []entities.TimeEntry
	add := func(key dynamoKey, av map[string]types.AttributeValue) error {
		seen[key] = true
		if av == nil {
			return nil
		}
		var it timeEntryItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return err
		}
		e, err := fromTimeEntryItem(it)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	}

	var startKey map[string]types.AttributeValue
	for {
		res, err := t.store.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(t.store.tables.TimeEntries),
			KeyConditionExpression: aws.String("#order_id = :order_id"),
			ExpressionAttributeNames: map[string]string{
				"#order_id": "order_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":order_id": &types.AttributeValueMemberS{Value: orderID},
			},
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, av := range res.Items {
			id, _ := av["id"].(*types.AttributeValueMemberS)
			if id == nil {
				continue
			}
			key := t.entryKey(orderID, id.Value)
			if _, known := t.images[key]; !known {
				t.remember(key, av)
			}
			if err := add(key, t.images[key]); err != nil {
				return nil, err
			}
		}
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		startKey = res.LastEvaluatedKey
	}
	for _, key := range t.order {
		if key.table != t.store.tables.TimeEntries || key.pk != orderID || seen[key] {
			continue
		}
		if err := add(key, t.images[key]); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (t *dynamoTx) PutDraft(_ context.Context, d *entities.Draft) error {
	it := toDraftItem(*d)
	it.Version = d.Version + 1
	if err := t.stage(t.idKey(t.store.tables.Drafts, d.ID), it, d.Version); err != nil {
		return err
	}
	d.Version = it.Version
	return nil
}

func (t *dynamoTx) PutEscrow(_ context.Context, e *entities.Escrow) error {
	it := toEscrowItem(*e)
	it.Version = e.Version + 1
	if err := t.stage(t.idKey(t.store.tables.Escrows, e.ID), it, e.Version); err != nil {
		return err
	}
	e.Version = it.Version
	return nil
}

func (t *dynamoTx) PutOrder(_ context.Context, o *entities.Order) error {
	it := toOrderItem(*o)
	it.Version = o.Version + 1
	if err := t.stage(t.idKey(t.store.tables.Orders, o.ID), it, o.Version); err != nil {
		return err
	}
	o.Version = it.Version
	return nil
}

func (t *dynamoTx) PutTimeEntry(_ context.Context, e *entities.TimeEntry) error {
	it := toTimeEntryItem(*e)
	it.Version = e.Version + 1
	if err := t.stage(t.entryKey(e.OrderID, e.ID), it, e.Version); err != nil {
		return err
	}
	e.Version = it.Version
	return nil
}

func (t *dynamoTx) PutStornoRequest(_ context.Context, r *entities.StornoRequest) error {
	it := toStornoRequestItem(*r)
	it.Version = r.Version + 1
	if err := t.stage(t.idKey(t.store.tables.StornoRequests, r.ID), it, r.Version); err != nil {
		return err
	}
	r.Version = it.Version
	return nil
}

func (t *dynamoTx) PutProviderStats(_ context.Context, s *entities.ProviderStats) error {
	it := toProviderStatsItem(*s)
	it.Version = s.Version + 1
	if err := t.stage(t.statsKey(s.ProviderID), it, s.Version); err != nil {
		return err
	}
	s.Version = it.Version
	return nil
}
