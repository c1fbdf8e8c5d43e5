package lib

import (
	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient(apiKey string) *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

// NewStripeClient replaces the shared client, e.g. with one pointed at a
// local backend.
func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}
