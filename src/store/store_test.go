package store

import (
	"context"
	"errors"
	"fmt"
	"hms/src/models"
	"hms/src/types"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created   = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	processed = time.Date(2025, 1, 2, 4, 0, 0, 0, time.UTC)
)

func room(id string, status types.RoomStatus) *models.Room {
	return &models.Room{RoomID: id, RoomNumber: "1" + id, Type: types.ROOM_STANDARD, Price: 99.5, Status: status, CreatedAt: created}
}

func booking(id string, roomID string) *models.Booking {
	return &models.Booking{
		BookingID:    id,
		RoomID:       roomID,
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		CheckInDate:  "2025-03-01",
		CheckOutDate: "2025-03-04",
		Status:       types.BOOKING_CONFIRMED,
		CreatedAt:    created,
	}
}

func payment(id string, bookingID string) *models.Payment {
	return &models.Payment{
		PaymentID:     id,
		BookingID:     bookingID,
		Amount:        250,
		PaymentMethod: types.PAYMENT_METHOD_CARD,
		Status:        types.PAYMENT_PENDING,
		CreatedAt:     created,
	}
}

func roomIDs(rooms []models.Room) []string {
	ids := []string{}
	for _, r := range rooms {
		ids = append(ids, r.RoomID)
	}
	sort.Strings(ids)
	return ids
}

func bookingIDs(bookings []models.Booking) []string {
	ids := []string{}
	for _, b := range bookings {
		ids = append(ids, b.BookingID)
	}
	sort.Strings(ids)
	return ids
}

func paymentIDs(payments []models.Payment) []string {
	ids := []string{}
	for _, p := range payments {
		ids = append(ids, p.PaymentID)
	}
	sort.Strings(ids)
	return ids
}

// testStore runs the behavior every driver shares.
func testStore(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("rooms", func(t *testing.T) {
		rooms, err := st.ListRooms(ctx)
		require.Nil(t, err)
		assert.Empty(t, rooms)

		for i, status := range []types.RoomStatus{types.ROOM_AVAILABLE, types.ROOM_OCCUPIED, types.ROOM_AVAILABLE, types.ROOM_MAINTENANCE} {
			require.Nil(t, st.PutRoom(ctx, room(fmt.Sprintf("r%d", i), status)))
		}

		got, err := st.GetRoom(ctx, "r1")
		require.Nil(t, err)
		assert.Equal(t, room("r1", types.ROOM_OCCUPIED), got)

		_, err = st.GetRoom(ctx, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))

		rooms, err = st.ListRooms(ctx)
		require.Nil(t, err)
		assert.Equal(t, []string{"r0", "r1", "r2", "r3"}, roomIDs(rooms))

		available, err := st.ListRoomsByStatus(ctx, types.ROOM_AVAILABLE)
		require.Nil(t, err)
		assert.Equal(t, []string{"r0", "r2"}, roomIDs(available))
	})

	t.Run("bookings", func(t *testing.T) {
		require.Nil(t, st.PutBooking(ctx, booking("b1", "r0")))
		require.Nil(t, st.PutBooking(ctx, booking("b2", "r0")))
		require.Nil(t, st.PutBooking(ctx, booking("b3", "r2")))

		got, err := st.GetBooking(ctx, "b3")
		require.Nil(t, err)
		assert.Equal(t, booking("b3", "r2"), got)

		_, err = st.GetBooking(ctx, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))

		all, err := st.ListBookings(ctx)
		require.Nil(t, err)
		assert.Equal(t, []string{"b1", "b2", "b3"}, bookingIDs(all))

		byRoom, err := st.ListBookingsByRoom(ctx, "r0")
		require.Nil(t, err)
		assert.Equal(t, []string{"b1", "b2"}, bookingIDs(byRoom))

		none, err := st.ListBookingsByRoom(ctx, "unknown")
		require.Nil(t, err)
		assert.Empty(t, none)
	})

	t.Run("payments", func(t *testing.T) {
		require.Nil(t, st.PutPayment(ctx, payment("p1", "b1")))
		require.Nil(t, st.PutPayment(ctx, payment("p2", "b1")))
		require.Nil(t, st.PutPayment(ctx, payment("p3", "b2")))

		got, err := st.GetPayment(ctx, "p1")
		require.Nil(t, err)
		assert.Equal(t, payment("p1", "b1"), got)
		assert.Nil(t, got.ProcessedAt)

		all, err := st.ListPayments(ctx)
		require.Nil(t, err)
		assert.Equal(t, []string{"p1", "p2", "p3"}, paymentIDs(all))

		byBooking, err := st.ListPaymentsByBooking(ctx, "b1")
		require.Nil(t, err)
		assert.Equal(t, []string{"p1", "p2"}, paymentIDs(byBooking))

		done, err := st.CompletePayment(ctx, "p1", types.PAYMENT_PAID, processed, "ref_1")
		require.Nil(t, err)
		assert.Equal(t, types.PAYMENT_PAID, done.Status)
		require.NotNil(t, done.ProcessedAt)
		assert.True(t, processed.Equal(*done.ProcessedAt))
		assert.Equal(t, "ref_1", done.GatewayReference)
		assert.Equal(t, 250.0, done.Amount)

		stored, err := st.GetPayment(ctx, "p1")
		require.Nil(t, err)
		assert.Equal(t, types.PAYMENT_PAID, stored.Status)
		require.NotNil(t, stored.ProcessedAt)

		_, err = st.CompletePayment(ctx, "p1", types.PAYMENT_FAILED, processed, "")
		assert.True(t, errors.Is(err, ErrNotPending))

		_, err = st.CompletePayment(ctx, "missing", types.PAYMENT_PAID, processed, "")
		assert.True(t, errors.Is(err, ErrNotFound))

		failed, err := st.CompletePayment(ctx, "p2", types.PAYMENT_FAILED, processed, "")
		require.Nil(t, err)
		assert.Equal(t, types.PAYMENT_FAILED, failed.Status)
	})

	t.Run("concurrent completion", func(t *testing.T) {
		require.Nil(t, st.PutPayment(ctx, payment("p9", "b9")))

		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := st.CompletePayment(ctx, "p9", types.PAYMENT_PAID, processed, "")
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
					return
				}
				assert.True(t, errors.Is(err, ErrNotPending), err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	r := room("r1", types.ROOM_AVAILABLE)
	require.Nil(t, st.PutRoom(ctx, r))

	r.Status = types.ROOM_OCCUPIED
	got, err := st.GetRoom(ctx, "r1")
	require.Nil(t, err)
	assert.Equal(t, types.ROOM_AVAILABLE, got.Status)
}

func TestMemoryStoreReindexesMovedBooking(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.Nil(t, st.PutBooking(ctx, booking("b1", "r1")))
	require.Nil(t, st.PutBooking(ctx, booking("b1", "r2")))

	r1, _ := st.ListBookingsByRoom(ctx, "r1")
	r2, _ := st.ListBookingsByRoom(ctx, "r2")
	assert.Empty(t, r1)
	assert.Equal(t, []string{"b1"}, bookingIDs(r2))
}
