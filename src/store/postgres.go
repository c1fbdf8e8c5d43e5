package store

import (
	"context"
	"errors"
	"fmt"
	"hms/src/models"
	"hms/src/models/scopes"
	"hms/src/types"
	"time"

	"gorm.io/gorm"
)

// Postgres stores each entity in its own table through gorm. The room_id and
// booking_id columns are indexed and back the by-foreign-key listings.
type Postgres struct {
	db     *gorm.DB
	tables Tables
}

func NewPostgres(db *gorm.DB, tables Tables) *Postgres {
	return &Postgres{db: db, tables: tables}
}

// Migrate creates or updates the three tables.
func (p *Postgres) Migrate() error {
	if err := p.db.Table(p.tables.Rooms).AutoMigrate(&models.Room{}); err != nil {
		return fmt.Errorf("migrating %s: %w", p.tables.Rooms, err)
	}
	if err := p.db.Table(p.tables.Bookings).AutoMigrate(&models.Booking{}); err != nil {
		return fmt.Errorf("migrating %s: %w", p.tables.Bookings, err)
	}
	if err := p.db.Table(p.tables.Payments).AutoMigrate(&models.Payment{}); err != nil {
		return fmt.Errorf("migrating %s: %w", p.tables.Payments, err)
	}
	return nil
}

func (p *Postgres) table(ctx context.Context, name string) *gorm.DB {
	return p.db.WithContext(ctx).Table(name)
}

func (p *Postgres) PutRoom(ctx context.Context, room *models.Room) error {
	if err := p.table(ctx, p.tables.Rooms).Create(room).Error; err != nil {
		return fmt.Errorf("inserting room: %w", err)
	}
	return nil
}

func (p *Postgres) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	err := p.table(ctx, p.tables.Rooms).
		Scopes(scopes.WithRoomID(id)).
		Take(&room).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (p *Postgres) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := p.table(ctx, p.tables.Rooms).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	return rooms, nil
}

func (p *Postgres) ListRoomsByStatus(ctx context.Context, status types.RoomStatus) ([]models.Room, error) {
	rooms := []models.Room{}
	err := p.table(ctx, p.tables.Rooms).
		Scopes(scopes.WithStatus(string(status))).
		Find(&rooms).
		Error
	if err != nil {
		return nil, fmt.Errorf("listing rooms by status: %w", err)
	}
	return rooms, nil
}

func (p *Postgres) PutBooking(ctx context.Context, booking *models.Booking) error {
	if err := p.table(ctx, p.tables.Bookings).Create(booking).Error; err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func (p *Postgres) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := p.table(ctx, p.tables.Bookings).
		Scopes(scopes.WithBookingID(id)).
		Take(&booking).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &booking, nil
}

func (p *Postgres) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := p.table(ctx, p.tables.Bookings).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

func (p *Postgres) ListBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := p.table(ctx, p.tables.Bookings).
		Scopes(scopes.WithRoomID(roomID)).
		Find(&bookings).
		Error
	if err != nil {
		return nil, fmt.Errorf("listing bookings by room: %w", err)
	}
	return bookings, nil
}

func (p *Postgres) PutPayment(ctx context.Context, payment *models.Payment) error {
	if err := p.table(ctx, p.tables.Payments).Create(payment).Error; err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (p *Postgres) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := p.table(ctx, p.tables.Payments).
		Scopes(scopes.WithPaymentID(id)).
		Take(&payment).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &payment, nil
}

func (p *Postgres) ListPayments(ctx context.Context) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := p.table(ctx, p.tables.Payments).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return payments, nil
}

func (p *Postgres) ListPaymentsByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := p.table(ctx, p.tables.Payments).
		Scopes(scopes.WithBookingID(bookingID)).
		Find(&payments).
		Error
	if err != nil {
		return nil, fmt.Errorf("listing payments by booking: %w", err)
	}
	return payments, nil
}

func (p *Postgres) CompletePayment(ctx context.Context, id string, status types.PaymentStatus, processedAt time.Time, reference string) (*models.Payment, error) {
	res := p.table(ctx, p.tables.Payments).
		Scopes(scopes.WithPaymentID(id), scopes.WithPendingStatus).
		Updates(map[string]any{
			"status":            status,
			"processed_at":      processedAt,
			"gateway_reference": reference,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("updating payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := p.GetPayment(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotPending
	}
	return p.GetPayment(ctx, id)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("querying record: %w", err)
}
