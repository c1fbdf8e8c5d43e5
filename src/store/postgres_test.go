package store

import (
	"context"
	"errors"
	"hms/src/types"
	"log"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

var (
	roomColumns    = []string{"room_id", "room_number", "type", "price", "status", "created_at"}
	bookingColumns = []string{"booking_id", "room_id", "guest_name", "guest_email", "check_in_date", "check_out_date", "status", "created_at"}
	paymentColumns = []string{"payment_id", "booking_id", "amount", "payment_method", "status", "gateway_reference", "created_at", "processed_at"}
)

func TestPostgresRooms(t *testing.T) {
	ctx := context.Background()
	gdb, mock := NewMockDB()
	st := NewPostgres(gdb, DefaultTables())

	t.Run("inserts into the rooms table", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO "rooms"`).WillReturnResult(sqlmock.NewResult(0, 1))

		require.Nil(t, st.PutRoom(ctx, room("r1", types.ROOM_AVAILABLE)))
	})

	t.Run("reads a room by id", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE room_id = \$1`).
			WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("r1", "1r1", "standard", 99.5, "available", created))

		got, err := st.GetRoom(ctx, "r1")
		require.Nil(t, err)
		assert.Equal(t, room("r1", types.ROOM_AVAILABLE), got)
	})

	t.Run("maps a missing row to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE room_id = \$1`).
			WillReturnRows(sqlmock.NewRows(roomColumns))

		_, err := st.GetRoom(ctx, "nope")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("filters rooms by status", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "rooms" WHERE status = \$1`).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow("r1", "1r1", "standard", 99.5, "available", created).
				AddRow("r2", "1r2", "standard", 99.5, "available", created))

		rooms, err := st.ListRoomsByStatus(ctx, types.ROOM_AVAILABLE)
		require.Nil(t, err)
		assert.Equal(t, []string{"r1", "r2"}, roomIDs(rooms))
	})

	t.Run("wraps query errors", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "rooms"`).WillReturnError(errors.New("connection reset"))

		_, err := st.ListRooms(ctx)
		require.NotNil(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestPostgresBookingsByRoom(t *testing.T) {
	ctx := context.Background()
	gdb, mock := NewMockDB()
	st := NewPostgres(gdb, Tables{Rooms: "rooms", Bookings: "hotel_bookings", Payments: "payments"})

	mock.ExpectQuery(`SELECT \* FROM "hotel_bookings" WHERE room_id = \$1`).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow("b1", "r1", "Ada", "ada@example.com", "2025-03-01", "2025-03-04", "confirmed", created))

	bookings, err := st.ListBookingsByRoom(ctx, "r1")
	require.Nil(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, *booking("b1", "r1"), bookings[0])

	mock.ExpectQuery(`SELECT \* FROM "hotel_bookings" WHERE room_id = \$1`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	none, err := st.ListBookingsByRoom(ctx, "unknown")
	require.Nil(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestPostgresCompletePayment(t *testing.T) {
	ctx := context.Background()
	gdb, mock := NewMockDB()
	st := NewPostgres(gdb, DefaultTables())

	t.Run("updates a pending payment", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "payments" SET .* WHERE payment_id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE payment_id = \$1`).
			WillReturnRows(sqlmock.NewRows(paymentColumns).
				AddRow("p1", "b1", 250.0, "card", "PAID", "ref_1", created, processed))

		got, err := st.CompletePayment(ctx, "p1", types.PAYMENT_PAID, processed, "ref_1")
		require.Nil(t, err)
		assert.Equal(t, types.PAYMENT_PAID, got.Status)
		require.NotNil(t, got.ProcessedAt)
		assert.True(t, processed.Equal(*got.ProcessedAt))
	})

	t.Run("refuses a processed payment", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "payments" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE payment_id = \$1`).
			WillReturnRows(sqlmock.NewRows(paymentColumns).
				AddRow("p1", "b1", 250.0, "card", "PAID", "ref_1", created, processed))

		_, err := st.CompletePayment(ctx, "p1", types.PAYMENT_FAILED, processed, "")
		assert.True(t, errors.Is(err, ErrNotPending))
	})

	t.Run("reports an unknown payment", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "payments" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE payment_id = \$1`).
			WillReturnRows(sqlmock.NewRows(paymentColumns))

		_, err := st.CompletePayment(ctx, "missing", types.PAYMENT_PAID, processed, "")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	assert.Nil(t, mock.ExpectationsWereMet())
}
