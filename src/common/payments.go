package common

import (
	"context"
	"errors"
	"fmt"
	"hms/src/events"
	"hms/src/gateway"
	"hms/src/lib/logger"
	"hms/src/models"
	"hms/src/store"
	"hms/src/types"
)

type PaymentService struct {
	payments store.PaymentStore
	gateway  gateway.Gateway
	opts     options
}

func NewPaymentService(payments store.PaymentStore, gw gateway.Gateway, opts ...Option) *PaymentService {
	return &PaymentService{payments: payments, gateway: gw, opts: buildOptions(opts)}
}

func (s *PaymentService) CreatePayment(ctx context.Context, input *types.CreatePaymentRequestBody) (*models.Payment, error) {
	if err := validateInput(input, "bookingId", "amount"); err != nil {
		return nil, err
	}
	method := input.PaymentMethod
	if method == "" {
		method = types.PAYMENT_METHOD_CARD
	}
	payment := models.Payment{
		PaymentID:     s.opts.newID(),
		BookingID:     input.BookingID,
		Amount:        float64(input.Amount),
		PaymentMethod: method,
		Status:        types.PAYMENT_PENDING,
		CreatedAt:     s.opts.now(),
	}
	if err := s.payments.PutPayment(ctx, &payment); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}
	events.Emit(ctx, s.opts.publisher, events.Event{Type: events.PAYMENT_CREATED, ID: payment.PaymentID, Data: payment})
	return &payment, nil
}

// ProcessPayment charges a pending payment and records the outcome. A payment
// that has already left PENDING is returned as stored, without charging it
// again.
func (s *PaymentService) ProcessPayment(ctx context.Context, id string) (*models.Payment, string, error) {
	payment, err := s.GetPaymentById(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if payment.IsProcessed() {
		return payment, MSG_PAYMENT_ALREADY_DONE, nil
	}

	outcome, err := s.gateway.Charge(ctx, payment)
	if err != nil {
		return nil, "", fmt.Errorf("charging payment %s: %w", id, err)
	}

	updated, err := s.payments.CompletePayment(ctx, id, outcome.Status, s.opts.now(), outcome.Reference)
	switch {
	case errors.Is(err, store.ErrNotPending):
		logger.Log.Infof("Payment %s was processed concurrently, discarding %s outcome", id, outcome.Status)
		current, gerr := s.GetPaymentById(ctx, id)
		if gerr != nil {
			return nil, "", gerr
		}
		return current, MSG_PAYMENT_ALREADY_DONE, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, "", &types.NotFoundError{Resource: "Payment", ID: id}
	case err != nil:
		return nil, "", fmt.Errorf("completing payment %s: %w", id, err)
	}

	events.Emit(ctx, s.opts.publisher, events.Event{Type: events.PAYMENT_PROCESSED, ID: updated.PaymentID, Data: updated})
	if updated.Status == types.PAYMENT_PAID {
		return updated, MSG_PAYMENT_PAID, nil
	}
	return updated, MSG_PAYMENT_FAILED, nil
}

func (s *PaymentService) GetAllPayments(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.payments.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

func (s *PaymentService) GetPaymentById(ctx context.Context, id string) (*models.Payment, error) {
	if id == "" {
		return nil, types.NewValidationError("Payment ID is required", "id")
	}
	payment, err := s.payments.GetPayment(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &types.NotFoundError{Resource: "Payment", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching payment %s: %w", id, err)
	}
	return payment, nil
}

func (s *PaymentService) GetPaymentsByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	if bookingID == "" {
		return nil, types.NewValidationError("Booking ID is required", "bookingId")
	}
	payments, err := s.payments.ListPaymentsByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("listing payments for booking %s: %w", bookingID, err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}
