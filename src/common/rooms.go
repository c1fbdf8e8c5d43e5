package common

import (
	"context"
	"errors"
	"fmt"
	"hms/src/events"
	"hms/src/models"
	"hms/src/store"
	"hms/src/types"
	"hms/src/utils"
	"time"
)

type RoomService struct {
	rooms store.RoomStore
	opts  options
}

func NewRoomService(rooms store.RoomStore, opts ...Option) *RoomService {
	return &RoomService{rooms: rooms, opts: buildOptions(opts)}
}

func (s *RoomService) CreateRoom(ctx context.Context, input *types.CreateRoomRequestBody) (*models.Room, error) {
	if err := validateInput(input, "roomNumber", "type", "price"); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = types.ROOM_AVAILABLE
	}
	room := models.Room{
		RoomID:     s.opts.newID(),
		RoomNumber: input.RoomNumber,
		Type:       input.Type,
		Price:      float64(input.Price),
		Status:     status,
		CreatedAt:  s.opts.now(),
	}
	if err := s.rooms.PutRoom(ctx, &room); err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}
	events.Emit(ctx, s.opts.publisher, events.Event{Type: events.ROOM_CREATED, ID: room.RoomID, Data: room})
	return &room, nil
}

func (s *RoomService) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	return rooms, nil
}

func (s *RoomService) GetRoomById(ctx context.Context, id string) (*models.Room, error) {
	if id == "" {
		return nil, types.NewValidationError("Room ID is required", "id")
	}
	room, err := s.rooms.GetRoom(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &types.NotFoundError{Resource: "Room", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching room %s: %w", id, err)
	}
	return room, nil
}

// CheckAvailability lists rooms whose status is available. When both dates
// parse and a booking reader is configured, rooms booked within the range
// are left out as well. The dates are always echoed back as given.
func (s *RoomService) CheckAvailability(ctx context.Context, startDate string, endDate string) (*models.Availability, error) {
	rooms, err := s.rooms.ListRoomsByStatus(ctx, types.ROOM_AVAILABLE)
	if err != nil {
		return nil, fmt.Errorf("listing available rooms: %w", err)
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	if s.opts.bookings != nil && startDate != "" && endDate != "" {
		start, serr := utils.ParseDate(startDate)
		end, eerr := utils.ParseDate(endDate)
		if serr == nil && eerr == nil && start.Before(end) {
			rooms, err = s.excludeBooked(ctx, rooms, start, end)
			if err != nil {
				return nil, err
			}
		}
	}

	return &models.Availability{
		AvailableRooms: rooms,
		Count:          len(rooms),
		StartDate:      utils.StringPtr(startDate),
		EndDate:        utils.StringPtr(endDate),
	}, nil
}

func (s *RoomService) excludeBooked(ctx context.Context, rooms []models.Room, start time.Time, end time.Time) ([]models.Room, error) {
	bookings, err := s.opts.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	booked := map[string]bool{}
	for _, b := range bookings {
		in, ierr := utils.ParseDate(b.CheckInDate)
		out, oerr := utils.ParseDate(b.CheckOutDate)
		if ierr != nil || oerr != nil {
			continue
		}
		if utils.Overlaps(in, out, start, end) {
			booked[b.RoomID] = true
		}
	}
	free := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if !booked[room.RoomID] {
			free = append(free, room)
		}
	}
	return free, nil
}
