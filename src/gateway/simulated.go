package gateway

import (
	"context"
	"hms/src/models"
	"hms/src/types"
	"math/rand/v2"
	"sync"
)

const DEFAULT_FAILURE_RATE = 0.1

// Simulated fails a fixed share of charges at random.
type Simulated struct {
	mu          sync.Mutex
	rng         *rand.Rand
	failureRate float64
}

// NewSimulated builds a gateway with the given failure rate. A nil source
// seeds from the runtime.
func NewSimulated(failureRate float64, src rand.Source) *Simulated {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Simulated{rng: rand.New(src), failureRate: failureRate}
}

func (s *Simulated) Charge(_ context.Context, _ *models.Payment) (Outcome, error) {
	s.mu.Lock()
	draw := s.rng.Float64()
	s.mu.Unlock()
	if draw < s.failureRate {
		return Outcome{Status: types.PAYMENT_FAILED}, nil
	}
	return Outcome{Status: types.PAYMENT_PAID}, nil
}
