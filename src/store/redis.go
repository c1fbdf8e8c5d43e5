package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hms/src/models"
	"hms/src/types"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSwapRetries = 5

// Redis keeps each table in one hash keyed by record id. Bookings and
// payments are also indexed by their foreign key in a set per parent id.
type Redis struct {
	rdb    *redis.Client
	tables Tables
}

func NewRedis(rdb *redis.Client, tables Tables) *Redis {
	return &Redis{rdb: rdb, tables: tables}
}

func indexKey(table string, field string, id string) string {
	return fmt.Sprintf("%s:%s:%s", table, field, id)
}

func (r *Redis) put(ctx context.Context, table string, id string, record any, index string) error {
	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", table, err)
	}
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, table, id, b)
		if index != "" {
			pipe.SAdd(ctx, index, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing %s record: %w", table, err)
	}
	return nil
}

func (r *Redis) get(ctx context.Context, table string, id string, out any) error {
	raw, err := r.rdb.HGet(ctx, table, id).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading %s record: %w", table, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding %s record: %w", table, err)
	}
	return nil
}

func scanAll[T any](ctx context.Context, rdb *redis.Client, table string) ([]T, error) {
	vals, err := rdb.HVals(ctx, table).Result()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", table, err)
	}
	out := make([]T, 0, len(vals))
	for _, raw := range vals {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func scanIndex[T any](ctx context.Context, rdb *redis.Client, table string, index string) ([]T, error) {
	ids, err := rdb.SMembers(ctx, index).Result()
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", index, err)
	}
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	vals, err := rdb.HMGet(ctx, table, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading %s records: %w", table, err)
	}
	for _, val := range vals {
		raw, ok := val.(string)
		if !ok {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Redis) PutRoom(ctx context.Context, room *models.Room) error {
	return r.put(ctx, r.tables.Rooms, room.RoomID, room, "")
}

func (r *Redis) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.get(ctx, r.tables.Rooms, id, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *Redis) ListRooms(ctx context.Context) ([]models.Room, error) {
	return scanAll[models.Room](ctx, r.rdb, r.tables.Rooms)
}

func (r *Redis) ListRoomsByStatus(ctx context.Context, status types.RoomStatus) ([]models.Room, error) {
	rooms, err := r.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	filtered := []models.Room{}
	for _, room := range rooms {
		if room.Status == status {
			filtered = append(filtered, room)
		}
	}
	return filtered, nil
}

func (r *Redis) PutBooking(ctx context.Context, booking *models.Booking) error {
	return r.put(ctx, r.tables.Bookings, booking.BookingID, booking, indexKey(r.tables.Bookings, "room", booking.RoomID))
}

func (r *Redis) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.get(ctx, r.tables.Bookings, id, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *Redis) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return scanAll[models.Booking](ctx, r.rdb, r.tables.Bookings)
}

func (r *Redis) ListBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	return scanIndex[models.Booking](ctx, r.rdb, r.tables.Bookings, indexKey(r.tables.Bookings, "room", roomID))
}

func (r *Redis) PutPayment(ctx context.Context, payment *models.Payment) error {
	return r.put(ctx, r.tables.Payments, payment.PaymentID, payment, indexKey(r.tables.Payments, "booking", payment.BookingID))
}

func (r *Redis) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.get(ctx, r.tables.Payments, id, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *Redis) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return scanAll[models.Payment](ctx, r.rdb, r.tables.Payments)
}

func (r *Redis) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	return scanIndex[models.Payment](ctx, r.rdb, r.tables.Payments, indexKey(r.tables.Payments, "booking", bookingID))
}

// completePaymentScript swaps one payment record only while it still holds
// the value the caller read. Returns 1 on swap, 0 when the record is gone and
// -1 when it changed in between.
var completePaymentScript = redis.NewScript(`
local current = redis.call("HGET", KEYS[1], ARGV[1])
if not current then
	return 0
end
if current ~= ARGV[2] then
	return -1
end
redis.call("HSET", KEYS[1], ARGV[1], ARGV[3])
return 1
`)

// CompletePayment compares and swaps the single payment record, so writes to
// other payments never force a retry.
func (r *Redis) CompletePayment(ctx context.Context, id string, status types.PaymentStatus, processedAt time.Time, reference string) (*models.Payment, error) {
	table := r.tables.Payments
	for i := 0; i < redisSwapRetries; i++ {
		raw, err := r.rdb.HGet(ctx, table, id).Result()
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s record: %w", table, err)
		}
		var payment models.Payment
		if err := json.Unmarshal([]byte(raw), &payment); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", table, err)
		}
		if payment.Status != types.PAYMENT_PENDING {
			return nil, ErrNotPending
		}
		payment.Status = status
		payment.ProcessedAt = &processedAt
		payment.GatewayReference = reference
		next, err := json.Marshal(&payment)
		if err != nil {
			return nil, fmt.Errorf("encoding %s record: %w", table, err)
		}

		swapped, err := completePaymentScript.Run(ctx, r.rdb, []string{table}, id, raw, string(next)).Int()
		if err != nil {
			return nil, fmt.Errorf("updating payment: %w", err)
		}
		switch swapped {
		case 1:
			return &payment, nil
		case 0:
			return nil, ErrNotFound
		}
	}
	return nil, fmt.Errorf("updating payment %s: record kept changing", id)
}
