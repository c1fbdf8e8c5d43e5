package gateway

import (
	"context"
	"errors"
	"hms/src/models"
	"hms/src/types"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func payment() *models.Payment {
	return &models.Payment{PaymentID: "p1", BookingID: "b1", Amount: 125.5, PaymentMethod: types.PAYMENT_METHOD_CARD, Status: types.PAYMENT_PENDING}
}

func TestSimulatedExtremes(t *testing.T) {
	ctx := context.Background()

	never := NewSimulated(0, nil)
	always := NewSimulated(1, nil)
	for i := 0; i < 100; i++ {
		out, err := never.Charge(ctx, payment())
		require.Nil(t, err)
		assert.Equal(t, types.PAYMENT_PAID, out.Status)

		out, err = always.Charge(ctx, payment())
		require.Nil(t, err)
		assert.Equal(t, types.PAYMENT_FAILED, out.Status)
	}
}

func TestSimulatedFailureShare(t *testing.T) {
	gw := NewSimulated(DEFAULT_FAILURE_RATE, rand.NewPCG(1, 2))
	failed := 0
	const draws = 10000
	for i := 0; i < draws; i++ {
		out, err := gw.Charge(context.Background(), payment())
		require.Nil(t, err)
		if out.Status == types.PAYMENT_FAILED {
			failed++
		}
	}
	assert.InDelta(t, DEFAULT_FAILURE_RATE, float64(failed)/draws, 0.02)
}

func TestFixed(t *testing.T) {
	gw := &Fixed{Status: types.PAYMENT_FAILED}
	out, err := gw.Charge(context.Background(), payment())
	require.Nil(t, err)
	assert.Equal(t, types.PAYMENT_FAILED, out.Status)

	gw.Err = errors.New("unreachable")
	_, err = gw.Charge(context.Background(), payment())
	assert.NotNil(t, err)
	assert.Equal(t, 2, gw.Calls)
}

func newStripeBackend(t *testing.T, status int, body string) (*Stripe, *http.Request, *url.Values) {
	t.Helper()
	var seen http.Request
	form := url.Values{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		raw, _ := io.ReadAll(r.Body)
		parsed, _ := url.ParseQuery(string(raw))
		for k, v := range parsed {
			form[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	client := stripe.NewClient("sk_test_123", stripe.WithBackends(backends))
	return NewStripe(client, "usd", "pm_card_visa"), &seen, &form
}

func TestStripeSucceeded(t *testing.T) {
	gw, req, form := newStripeBackend(t, http.StatusOK, `{"id":"pi_1","object":"payment_intent","status":"succeeded"}`)

	out, err := gw.Charge(context.Background(), payment())
	require.Nil(t, err)
	assert.Equal(t, Outcome{Status: types.PAYMENT_PAID, Reference: "pi_1"}, out)

	assert.Equal(t, "/v1/payment_intents", req.URL.Path)
	assert.Equal(t, "p1", req.Header.Get("Idempotency-Key"))
	assert.Equal(t, "12550", form.Get("amount"))
	assert.Equal(t, "usd", form.Get("currency"))
	assert.Equal(t, "b1", form.Get("metadata[bookingId]"))
}

func TestStripeIncompleteIntentFails(t *testing.T) {
	gw, _, _ := newStripeBackend(t, http.StatusOK, `{"id":"pi_2","object":"payment_intent","status":"requires_action"}`)

	out, err := gw.Charge(context.Background(), payment())
	require.Nil(t, err)
	assert.Equal(t, Outcome{Status: types.PAYMENT_FAILED, Reference: "pi_2"}, out)
}

func TestStripeCardDeclined(t *testing.T) {
	gw, _, _ := newStripeBackend(t, http.StatusPaymentRequired,
		`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined.","payment_intent":{"id":"pi_3","object":"payment_intent","status":"requires_payment_method"}}}`)

	out, err := gw.Charge(context.Background(), payment())
	require.Nil(t, err)
	assert.Equal(t, Outcome{Status: types.PAYMENT_FAILED, Reference: "pi_3"}, out)
}

func TestStripeOutageIsAnError(t *testing.T) {
	gw, _, _ := newStripeBackend(t, http.StatusInternalServerError,
		`{"error":{"type":"api_error","message":"Something went wrong."}}`)

	_, err := gw.Charge(context.Background(), payment())
	assert.NotNil(t, err)
}

func TestStripeSettlesOtherMethodsOffline(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	gw := NewStripe(stripe.NewClient("sk_test_123", stripe.WithBackends(backends)), "usd", "pm_card_visa")

	for _, method := range []types.PaymentMethod{types.PAYMENT_METHOD_CASH, types.PAYMENT_METHOD_BANK_TRANSFER} {
		p := payment()
		p.PaymentMethod = method
		out, err := gw.Charge(context.Background(), p)
		require.Nil(t, err)
		assert.Equal(t, Outcome{Status: types.PAYMENT_PAID}, out)
	}
	assert.Equal(t, 0, calls)
}
