package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/efes-rota/rota-planner/internal/observability/tracing"
	"github.com/efes-rota/rota-planner/sim"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	orderKeyPrefix    = "rota:order:"
	progressKeyPrefix = "rota:progress:"
	orderIndexKey     = "rota:orders"
	orderCodeKey      = "rota:order-codes"
	orderSeqKey       = "rota:order-seq"
	capacitiesKey     = "rota:capacities"
)

// addOrderScript stores a new order only when both its id and its code are
// free, and raises the id sequence to at least the new id.
//
// KEYS: order key, order index, code index, id sequence
// ARGV: id, code, record
var addOrderScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 or redis.call('ZSCORE', KEYS[2], ARGV[1]) then
	return -2
end
if redis.call('HSETNX', KEYS[3], ARGV[2], ARGV[1]) == 0 then
	return -1
end
redis.call('SET', KEYS[1], ARGV[3])
redis.call('ZADD', KEYS[2], ARGV[1], ARGV[1])
local seq = tonumber(redis.call('GET', KEYS[4]) or '0')
if tonumber(ARGV[1]) > seq then
	redis.call('SET', KEYS[4], ARGV[1])
end
return 1
`)

// RedisStore keeps orders as JSON records, production progress as one hash
// per order and capacities as a single hash.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func orderKey(id int64) string {
	return orderKeyPrefix + strconv.FormatInt(id, 10)
}

func progressKey(id int64) string {
	return progressKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *RedisStore) AddOrder(ctx context.Context, o *sim.Order) (added *sim.Order, err error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "add_order", orderCodeKey)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := validateNew(o); err != nil {
		return nil, err
	}
	stored := cloneOrder(o)
	stored.Hypothetical = false
	if stored.Status == "" {
		stored.Status = sim.StatusPending
	}
	if stored.Priority == "" {
		stored.Priority = sim.PriorityNormal
	}
	if stored.ID == 0 {
		id, err := r.client.Incr(ctx, orderSeqKey).Result()
		if err != nil {
			return nil, err
		}
		stored.ID = id
	}

	data, err := json.Marshal(NewOrderRecord(stored))
	if err != nil {
		return nil, ErrInvalidRecord
	}
	keys := []string{orderKey(stored.ID), orderIndexKey, orderCodeKey, orderSeqKey}
	res, err := addOrderScript.Run(ctx, r.client, keys, stored.ID, stored.Code, data).Int()
	if err != nil {
		return nil, err
	}
	switch res {
	case -2:
		return nil, fmt.Errorf("%w: id %d for %s", ErrOrderIDTaken, stored.ID, stored.Code)
	case -1:
		return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, stored.Code)
	}
	return stored, nil
}

func (r *RedisStore) writeOrder(ctx context.Context, o *sim.Order) error {
	data, err := json.Marshal(NewOrderRecord(o))
	if err != nil {
		return ErrInvalidRecord
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, orderKey(o.ID), data, 0)
	pipe.ZAdd(ctx, orderIndexKey, redis.Z{Score: float64(o.ID), Member: o.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) readOrder(ctx context.Context, id int64) (*sim.Order, error) {
	data, err := r.client.Get(ctx, orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
		}
		return nil, err
	}
	return decodeOrder(data)
}

func decodeOrder(data []byte) (*sim.Order, error) {
	var rec OrderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ErrInvalidRecord
	}
	return rec.Order(), nil
}

func (r *RedisStore) OrderByCode(ctx context.Context, code string) (*sim.Order, error) {
	id, err := r.client.HGet(ctx, orderCodeKey, code).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, code)
		}
		return nil, err
	}
	return r.readOrder(ctx, id)
}

// ListActiveOrders returns the orders in statuses, by ID. Records that no
// longer decode are logged and left out.
func (r *RedisStore) ListActiveOrders(ctx context.Context, statuses []sim.OrderStatus) (orders []*sim.Order, err error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "list_orders", orderIndexKey)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	ids, err := r.client.ZRange(ctx, orderIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = orderKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		o, err := decodeOrder([]byte(raw))
		if err != nil {
			logrus.Warnf("skipping order record %s: %v", keys[i], err)
			continue
		}
		if slices.Contains(statuses, o.Status) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *RedisStore) progress(ctx context.Context, id int64) (map[string]int, error) {
	raw, err := r.client.HGetAll(ctx, progressKey(id)).Result()
	if err != nil {
		return nil, err
	}
	done := make(map[string]int, len(raw))
	for station, v := range raw {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("progress of order %d at %s: %w", id, station, err)
		}
		done[station] = qty
	}
	return done, nil
}

func (r *RedisStore) CompletedStations(ctx context.Context, orderID int64) ([]string, error) {
	o, err := r.readOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	done, err := r.progress(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return completedFrom(o.Route, o.Quantity, done), nil
}

func (r *RedisStore) StationProgress(ctx context.Context, orderID int64, station string) (int, error) {
	qty, err := r.client.HGet(ctx, progressKey(orderID), station).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return qty, nil
}

func (r *RedisStore) StationCapacities(ctx context.Context) (caps map[string]float64, err error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "capacities", capacitiesKey)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	raw, err := r.client.HGetAll(ctx, capacitiesKey).Result()
	if err != nil {
		return nil, err
	}
	caps = make(map[string]float64, len(raw))
	for station, v := range raw {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logrus.Warnf("ignoring malformed capacity %q for %s", v, station)
			continue
		}
		caps[station] = c
	}
	return caps, nil
}

func (r *RedisStore) SetCapacity(ctx context.Context, station string, capacity float64) error {
	if capacity <= 0 {
		return fmt.Errorf("capacity of %s must be positive, got %v", station, capacity)
	}
	return r.client.HSet(ctx, capacitiesKey, station, capacity).Err()
}

func (r *RedisStore) RecordProduction(ctx context.Context, orderID int64, station string, qty int) (err error) {
	ctx, span := tracing.StartRedisOperationSpan(ctx, "record_production", progressKey(orderID))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if qty <= 0 {
		return ErrInvalidQuantity
	}
	o, err := r.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := checkStation(o, station); err != nil {
		return err
	}
	return r.logProduction(ctx, o, station, qty)
}

func (r *RedisStore) CompleteStation(ctx context.Context, orderID int64, station string) error {
	o, err := r.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if err := checkStation(o, station); err != nil {
		return err
	}
	done, err := r.StationProgress(ctx, orderID, station)
	if err != nil {
		return err
	}
	if missing := o.Quantity - done; missing > 0 {
		return r.logProduction(ctx, o, station, missing)
	}
	return nil
}

func (r *RedisStore) logProduction(ctx context.Context, o *sim.Order, station string, qty int) error {
	if err := r.client.HIncrBy(ctx, progressKey(o.ID), station, int64(qty)).Err(); err != nil {
		return err
	}
	done, err := r.progress(ctx, o.ID)
	if err != nil {
		return err
	}
	status := statusAfterProgress(o, done)
	if status == o.Status {
		return nil
	}
	o.Status = status
	return r.writeOrder(ctx, o)
}

// ReportBreakage shrinks the order by qty pieces and adds a Critical rework
// order for them.
func (r *RedisStore) ReportBreakage(ctx context.Context, orderID int64, station string, qty int) (*sim.Order, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	o, err := r.readOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkBreakage(o, station); err != nil {
		return nil, err
	}
	rework := splitBreakage(o, qty)
	if err := r.writeOrder(ctx, o); err != nil {
		return nil, err
	}
	for {
		added, err := r.AddOrder(ctx, rework)
		if !errors.Is(err, ErrDuplicateOrder) {
			if err == nil {
				logrus.Infof("order %s: %d pieces broken at %s, rework %s created", o.Code, added.Quantity, station, added.Code)
			}
			return added, err
		}
		rework.Code = ReworkCode(rework.Code)
	}
}

func (r *RedisStore) UpdateStatus(ctx context.Context, orderID int64, status sim.OrderStatus) error {
	o, err := r.readOrder(ctx, orderID)
	if err != nil {
		return err
	}
	o.Status = status
	return r.writeOrder(ctx, o)
}

// Import copies every order, production record and capacity of a memory
// store into r. Order IDs are preserved unless r already uses them, in which
// case the order gets a fresh ID. Existing orders are never overwritten.
func (r *RedisStore) Import(ctx context.Context, m *MemoryStore) error {
	caps, _ := m.StationCapacities(ctx)
	for station, c := range caps {
		if err := r.SetCapacity(ctx, station, c); err != nil {
			return err
		}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.orders))
	for id := range m.orders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		o := m.orders[id]
		added, err := r.AddOrder(ctx, o)
		if errors.Is(err, ErrOrderIDTaken) {
			fresh := cloneOrder(o)
			fresh.ID = 0
			added, err = r.AddOrder(ctx, fresh)
			if err == nil {
				logrus.Warnf("order %s: id %d already in use, imported as %d", o.Code, id, added.ID)
			}
		}
		if err != nil {
			return fmt.Errorf("importing %s: %w", o.Code, err)
		}
		for station, qty := range m.progress[id] {
			if err := r.client.HSet(ctx, progressKey(added.ID), station, qty).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}
