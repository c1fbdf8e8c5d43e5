package common

import (
	"errors"
	"fmt"
	"hms/src/events"
	"hms/src/store"
	"hms/src/types"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	MSG_BOOKING_CREATED      = "Booking created. Please complete payment."
	MSG_PAYMENT_CREATED      = "Payment created. Use process endpoint to complete payment."
	MSG_PAYMENT_PAID         = "Payment processed successfully!"
	MSG_PAYMENT_FAILED       = "Payment processing failed. Please try again."
	MSG_PAYMENT_ALREADY_DONE = "Payment already processed."
)

var validate = newValidator()

// newValidator reports field names by their json tag so validation errors
// read the same as the request bodies.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks input against its validate tags. Any missing field
// yields the same message naming every required field.
func validateInput(input any, required ...string) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return &types.ValidationError{Fields: required}
		}
	}
	return types.NewValidationError(fmt.Sprintf("Invalid value for %s", verrs[0].Field()), verrs[0].Field())
}

type options struct {
	now       func() time.Time
	newID     func() string
	publisher events.Publisher
	bookings  store.BookingStore
}

type Option func(*options)

// WithClock replaces the time source used for createdAt and processedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithBookingReader lets availability checks exclude rooms that already have
// a booking in the requested range.
func WithBookingReader(bookings store.BookingStore) Option {
	return func(o *options) {
		o.bookings = bookings
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.New().String() },
		publisher: events.LogPublisher{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
