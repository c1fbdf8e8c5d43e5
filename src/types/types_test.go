package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountDecoding(t *testing.T) {
	cases := map[string]Amount{
		`{"amount":150.5}`:   150.5,
		`{"amount":"99.90"}`: 99.9,
		`{"amount":" 12 "}`:  12,
		`{"amount":""}`:      0,
		`{"amount":null}`:    0,
		`{"bookingId":"b1"}`: 0,
	}
	for body, want := range cases {
		var in CreatePaymentRequestBody
		require.Nil(t, json.Unmarshal([]byte(body), &in), body)
		assert.Equal(t, want, in.Amount, body)
	}

	var in CreatePaymentRequestBody
	assert.NotNil(t, json.Unmarshal([]byte(`{"amount":"ten"}`), &in))
	assert.NotNil(t, json.Unmarshal([]byte(`{"amount":true}`), &in))
	assert.NotNil(t, json.Unmarshal([]byte(`{"amount":1e400}`), &in))
	for _, s := range []string{"NaN", "nan", "Infinity", "+Inf", "-Inf"} {
		assert.NotNil(t, json.Unmarshal([]byte(`{"amount":"`+s+`"}`), &in), s)
	}
}

func TestErrors(t *testing.T) {
	verr := &ValidationError{Fields: []string{"roomId", "guestName"}}
	assert.Equal(t, "Missing required fields: roomId, guestName", verr.Error())
	assert.Equal(t, "Invalid value for price", NewValidationError("Invalid value for price", "price").Error())

	wrapped := fmt.Errorf("creating booking: %w", verr)
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))

	nerr := &NotFoundError{Resource: "Payment", ID: "p1"}
	assert.Equal(t, "Payment not found", nerr.Error())
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", nerr)))
	assert.False(t, IsValidationError(errors.New("boom")))
}
