package models

import (
	"hms/src/types"
	"time"
)

type Room struct {
	RoomID     string           `gorm:"primaryKey" json:"roomId" dynamodbav:"roomId"`
	RoomNumber string           `json:"roomNumber" dynamodbav:"roomNumber"`
	Type       types.RoomType   `json:"type" dynamodbav:"type"`
	Price      float64          `json:"price" dynamodbav:"price"`
	Status     types.RoomStatus `gorm:"index" json:"status" dynamodbav:"status"`
	CreatedAt  time.Time        `json:"createdAt" dynamodbav:"createdAt"`
}

// Availability is the result of an availability check. The requested dates
// are echoed back as given, null when absent.
type Availability struct {
	AvailableRooms []Room  `json:"availableRooms"`
	Count          int     `json:"count"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
}
