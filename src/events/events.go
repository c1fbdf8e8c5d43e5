package events

import (
	"context"
	"encoding/json"
	"hms/src/lib/logger"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	ROOM_CREATED      = "room.created"
	BOOKING_CREATED   = "booking.created"
	PAYMENT_CREATED   = "payment.created"
	PAYMENT_PROCESSED = "payment.processed"
)

// Event is a notification that a record was written.
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// LogPublisher only writes events to the log.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	logger.Log.WithFields(logrus.Fields{
		"event": event.Type,
		"id":    event.ID,
	}).Debug("event")
	return nil
}

// Emit publishes the event and logs any failure. Delivery is best effort and
// never fails the write that produced the event.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := p.Publish(ctx, event); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"event": event.Type,
			"id":    event.ID,
		}).Warnf("Error publishing event: %s", err.Error())
	}
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return r.Err
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}
