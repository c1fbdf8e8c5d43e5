package models

import (
	"hms/src/types"
	"time"
)

type Booking struct {
	BookingID    string              `gorm:"primaryKey" json:"bookingId" dynamodbav:"bookingId"`
	RoomID       string              `gorm:"index" json:"roomId" dynamodbav:"roomId"`
	GuestName    string              `json:"guestName" dynamodbav:"guestName"`
	GuestEmail   string              `json:"guestEmail" dynamodbav:"guestEmail"`
	CheckInDate  string              `json:"checkInDate" dynamodbav:"checkInDate"`
	CheckOutDate string              `json:"checkOutDate" dynamodbav:"checkOutDate"`
	Status       types.BookingStatus `json:"status" dynamodbav:"status"`
	CreatedAt    time.Time           `json:"createdAt" dynamodbav:"createdAt"`
}
