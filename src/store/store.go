package store

import (
	"context"
	"errors"
	"hms/src/models"
	"hms/src/types"
	"time"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrNotPending = errors.New("payment is no longer pending")
)

// Tables names the partition each entity lives in.
type Tables struct {
	Rooms    string
	Bookings string
	Payments string
}

func DefaultTables() Tables {
	return Tables{Rooms: "rooms", Bookings: "bookings", Payments: "payments"}
}

type RoomStore interface {
	PutRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListRoomsByStatus(ctx context.Context, status types.RoomStatus) ([]models.Room, error)
}

type BookingStore interface {
	PutBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error)
}

type PaymentStore interface {
	PutPayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
	ListPaymentsByBooking(ctx context.Context, bookingID string) ([]models.Payment, error)
	// CompletePayment moves a PENDING payment to its final status in a single
	// conditional write. It fails with ErrNotPending when the payment has
	// already left PENDING.
	CompletePayment(ctx context.Context, id string, status types.PaymentStatus, processedAt time.Time, reference string) (*models.Payment, error)
}

type Store interface {
	RoomStore
	BookingStore
	PaymentStore
}
