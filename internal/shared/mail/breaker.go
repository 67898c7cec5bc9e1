package mail

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerSender wraps a Sender with a circuit breaker. When the mail
// transport keeps failing the breaker opens and sends fail fast; the
// error still propagates so the queue's redelivery handles the retry.
type BreakerSender struct {
	sender  Sender
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerSender creates a circuit-breaking sender.
func NewBreakerSender(sender Sender) *BreakerSender {
	settings := gobreaker.Settings{
		Name:        "mail",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &BreakerSender{
		sender:  sender,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Send sends through the breaker.
func (s *BreakerSender) Send(ctx context.Context, to, subject, body string) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.sender.Send(ctx, to, subject, body)
	})
	return err
}
