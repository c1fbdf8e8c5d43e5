package gateway

import (
	"context"
	"errors"
	"fmt"
	"hms/src/models"
	"hms/src/types"
	"math"

	"github.com/stripe/stripe-go/v82"
)

// Stripe charges card payments through a confirmed PaymentIntent. The payment
// id is the idempotency key, so a retried charge never bills twice. Cash and
// bank transfers are settled outside Stripe and succeed without a reference.
type Stripe struct {
	client        *stripe.Client
	currency      string
	paymentMethod string
}

func NewStripe(client *stripe.Client, currency string, paymentMethod string) *Stripe {
	return &Stripe{client: client, currency: currency, paymentMethod: paymentMethod}
}

func (s *Stripe) Charge(ctx context.Context, payment *models.Payment) (Outcome, error) {
	if payment.PaymentMethod != "" && payment.PaymentMethod != types.PAYMENT_METHOD_CARD {
		return Outcome{Status: types.PAYMENT_PAID}, nil
	}
	params := &stripe.PaymentIntentCreateParams{
		Amount:        stripe.Int64(int64(math.Round(payment.Amount * 100))),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(s.paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.SetIdempotencyKey(payment.PaymentID)
	params.AddMetadata("paymentId", payment.PaymentID)
	params.AddMetadata("bookingId", payment.BookingID)

	intent, err := s.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Type == stripe.ErrorTypeCard {
			ref := ""
			if serr.PaymentIntent != nil {
				ref = serr.PaymentIntent.ID
			}
			return Outcome{Status: types.PAYMENT_FAILED, Reference: ref}, nil
		}
		return Outcome{}, fmt.Errorf("creating payment intent: %w", err)
	}
	if intent.Status == stripe.PaymentIntentStatusSucceeded {
		return Outcome{Status: types.PAYMENT_PAID, Reference: intent.ID}, nil
	}
	return Outcome{Status: types.PAYMENT_FAILED, Reference: intent.ID}, nil
}
