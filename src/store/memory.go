package store

import (
	"context"
	"hms/src/models"
	"hms/src/types"
	"sync"
	"time"
)

// Memory keeps every table in process. Records are copied in and out so
// callers never share state with the store.
type Memory struct {
	mu                sync.RWMutex
	rooms             map[string]models.Room
	bookings          map[string]models.Booking
	payments          map[string]models.Payment
	bookingsByRoom    map[string][]string
	paymentsByBooking map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		rooms:             map[string]models.Room{},
		bookings:          map[string]models.Booking{},
		payments:          map[string]models.Payment{},
		bookingsByRoom:    map[string][]string{},
		paymentsByBooking: map[string][]string{},
	}
}

func (m *Memory) PutRoom(_ context.Context, room *models.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.RoomID] = *room
	return nil
}

func (m *Memory) GetRoom(_ context.Context, id string) (*models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (m *Memory) ListRooms(_ context.Context) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := make([]models.Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (m *Memory) ListRoomsByStatus(_ context.Context, status types.RoomStatus) ([]models.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rooms := []models.Room{}
	for _, room := range m.rooms {
		if room.Status == status {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (m *Memory) PutBooking(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.bookings[booking.BookingID]; ok {
		if prev.RoomID != booking.RoomID {
			m.bookingsByRoom[prev.RoomID] = without(m.bookingsByRoom[prev.RoomID], booking.BookingID)
			m.bookingsByRoom[booking.RoomID] = append(m.bookingsByRoom[booking.RoomID], booking.BookingID)
		}
	} else {
		m.bookingsByRoom[booking.RoomID] = append(m.bookingsByRoom[booking.RoomID], booking.BookingID)
	}
	m.bookings[booking.BookingID] = *booking
	return nil
}

func (m *Memory) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (m *Memory) ListBookings(_ context.Context) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bookings := make([]models.Booking, 0, len(m.bookings))
	for _, booking := range m.bookings {
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (m *Memory) ListBookingsByRoom(_ context.Context, roomID string) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.bookingsByRoom[roomID]
	bookings := make([]models.Booking, 0, len(ids))
	for _, id := range ids {
		bookings = append(bookings, m.bookings[id])
	}
	return bookings, nil
}

func (m *Memory) PutPayment(_ context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.payments[payment.PaymentID]; ok {
		if prev.BookingID != payment.BookingID {
			m.paymentsByBooking[prev.BookingID] = without(m.paymentsByBooking[prev.BookingID], payment.PaymentID)
			m.paymentsByBooking[payment.BookingID] = append(m.paymentsByBooking[payment.BookingID], payment.PaymentID)
		}
	} else {
		m.paymentsByBooking[payment.BookingID] = append(m.paymentsByBooking[payment.BookingID], payment.PaymentID)
	}
	m.payments[payment.PaymentID] = copyPayment(*payment)
	return nil
}

func (m *Memory) GetPayment(_ context.Context, id string) (*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	payment = copyPayment(payment)
	return &payment, nil
}

func (m *Memory) ListPayments(_ context.Context) ([]models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payments := make([]models.Payment, 0, len(m.payments))
	for _, payment := range m.payments {
		payments = append(payments, copyPayment(payment))
	}
	return payments, nil
}

func (m *Memory) ListPaymentsByBooking(_ context.Context, bookingID string) ([]models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.paymentsByBooking[bookingID]
	payments := make([]models.Payment, 0, len(ids))
	for _, id := range ids {
		payments = append(payments, copyPayment(m.payments[id]))
	}
	return payments, nil
}

func (m *Memory) CompletePayment(_ context.Context, id string, status types.PaymentStatus, processedAt time.Time, reference string) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if payment.Status != types.PAYMENT_PENDING {
		return nil, ErrNotPending
	}
	payment.Status = status
	payment.ProcessedAt = &processedAt
	payment.GatewayReference = reference
	m.payments[id] = payment
	payment = copyPayment(payment)
	return &payment, nil
}

func copyPayment(p models.Payment) models.Payment {
	if p.ProcessedAt != nil {
		t := *p.ProcessedAt
		p.ProcessedAt = &t
	}
	return p
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
