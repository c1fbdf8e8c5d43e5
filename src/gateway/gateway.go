package gateway

import (
	"context"
	"hms/src/models"
	"hms/src/types"
	"sync"
)

// Outcome is the result of a charge attempt. Reference is the provider's id
// for the attempt, empty for gateways that have none.
type Outcome struct {
	Status    types.PaymentStatus
	Reference string
}

// Gateway decides whether a pending payment succeeds. An error means the
// gateway could not be reached and the payment must stay PENDING.
type Gateway interface {
	Charge(ctx context.Context, payment *models.Payment) (Outcome, error)
}

// Fixed always returns the same outcome.
type Fixed struct {
	mu     sync.Mutex
	Status types.PaymentStatus
	Err    error
	Calls  int
}

func (f *Fixed) Charge(_ context.Context, _ *models.Payment) (Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return Outcome{}, f.Err
	}
	return Outcome{Status: f.Status}, nil
}
