package common

import (
	"context"
	"errors"
	"fmt"
	"hms/src/events"
	"hms/src/models"
	"hms/src/store"
	"hms/src/types"
)

type BookingService struct {
	bookings store.BookingStore
	opts     options
}

func NewBookingService(bookings store.BookingStore, opts ...Option) *BookingService {
	return &BookingService{bookings: bookings, opts: buildOptions(opts)}
}

// CreateBooking stores a confirmed booking. The room is not looked up and the
// dates are kept as given, unordered and unchecked for overlap.
func (s *BookingService) CreateBooking(ctx context.Context, input *types.CreateBookingRequestBody) (*models.Booking, error) {
	if err := validateInput(input, "roomId", "guestName", "guestEmail", "checkInDate", "checkOutDate"); err != nil {
		return nil, err
	}
	booking := models.Booking{
		BookingID:    s.opts.newID(),
		RoomID:       input.RoomID,
		GuestName:    input.GuestName,
		GuestEmail:   input.GuestEmail,
		CheckInDate:  input.CheckInDate,
		CheckOutDate: input.CheckOutDate,
		Status:       types.BOOKING_CONFIRMED,
		CreatedAt:    s.opts.now(),
	}
	if err := s.bookings.PutBooking(ctx, &booking); err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}
	events.Emit(ctx, s.opts.publisher, events.Event{Type: events.BOOKING_CREATED, ID: booking.BookingID, Data: booking})
	return &booking, nil
}

func (s *BookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) GetBookingById(ctx context.Context, id string) (*models.Booking, error) {
	if id == "" {
		return nil, types.NewValidationError("Booking ID is required", "id")
	}
	booking, err := s.bookings.GetBooking(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &types.NotFoundError{Resource: "Booking", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching booking %s: %w", id, err)
	}
	return booking, nil
}

func (s *BookingService) GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	if roomID == "" {
		return nil, types.NewValidationError("Room ID is required", "roomId")
	}
	bookings, err := s.bookings.ListBookingsByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for room %s: %w", roomID, err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
