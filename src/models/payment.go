package models

import (
	"hms/src/types"
	"time"
)

// Payment is a charge against a booking. ProcessedAt stays nil while the
// payment is PENDING and is set exactly when the status leaves PENDING.
type Payment struct {
	PaymentID        string              `gorm:"primaryKey" json:"paymentId" dynamodbav:"paymentId"`
	BookingID        string              `gorm:"index" json:"bookingId" dynamodbav:"bookingId"`
	Amount           float64             `json:"amount" dynamodbav:"amount"`
	PaymentMethod    types.PaymentMethod `json:"paymentMethod" dynamodbav:"paymentMethod"`
	Status           types.PaymentStatus `gorm:"index" json:"status" dynamodbav:"status"`
	GatewayReference string              `json:"gatewayReference,omitempty" dynamodbav:"gatewayReference,omitempty"`
	CreatedAt        time.Time           `json:"createdAt" dynamodbav:"createdAt"`
	ProcessedAt      *time.Time          `json:"processedAt" dynamodbav:"processedAt"`
}

func (p *Payment) IsProcessed() bool {
	return p.Status != types.PAYMENT_PENDING
}
