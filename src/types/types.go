package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Response is the envelope every handler replies with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type RoomStatus string

const (
	ROOM_AVAILABLE   RoomStatus = "available"
	ROOM_OCCUPIED    RoomStatus = "occupied"
	ROOM_MAINTENANCE RoomStatus = "maintenance"
)

type RoomType string

const (
	ROOM_STANDARD     RoomType = "standard"
	ROOM_DELUXE       RoomType = "deluxe"
	ROOM_SUITE        RoomType = "suite"
	ROOM_PRESIDENTIAL RoomType = "presidential"
)

type BookingStatus string

const (
	BOOKING_CONFIRMED BookingStatus = "confirmed"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "PENDING"
	PAYMENT_PAID    PaymentStatus = "PAID"
	PAYMENT_FAILED  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PAYMENT_METHOD_CARD          PaymentMethod = "card"
	PAYMENT_METHOD_CASH          PaymentMethod = "cash"
	PAYMENT_METHOD_BANK_TRANSFER PaymentMethod = "bank_transfer"
)

// Amount accepts both JSON numbers and numeric strings, the way the web
// forms submit prices. Empty strings and null decode to zero. NaN and
// infinities are rejected.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required"`
}

type RoomRequestParams struct {
	RoomID string `uri:"roomId" binding:"required"`
}

type BookingRequestParams struct {
	BookingID string `uri:"bookingId" binding:"required"`
}

type CreateRoomRequestBody struct {
	RoomNumber string     `json:"roomNumber" validate:"required"`
	Type       RoomType   `json:"type" validate:"required"`
	Price      Amount     `json:"price" validate:"required,gte=0"`
	Status     RoomStatus `json:"status,omitempty"`
}

type AvailabilityQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type CreateBookingRequestBody struct {
	RoomID       string `json:"roomId" validate:"required"`
	GuestName    string `json:"guestName" validate:"required"`
	GuestEmail   string `json:"guestEmail" validate:"required"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
}

type CreatePaymentRequestBody struct {
	BookingID     string        `json:"bookingId" validate:"required"`
	Amount        Amount        `json:"amount" validate:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
}
