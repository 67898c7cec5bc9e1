package collaboration

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ConfirmationDriver decides what happens after an invitation email has
// been delivered. The manual driver waits for the collaborator to click
// the link; the auto driver confirms on their behalf after a short
// delay, which is useful in demo environments without a real inbox.
type ConfirmationDriver interface {
	AfterDelivery(ctx context.Context, n *Notification)
}

// ManualDriver leaves confirmation to the collaborator.
type ManualDriver struct{}

func (ManualDriver) AfterDelivery(context.Context, *Notification) {}

// AutoDriver confirms the invitation itself after a fixed delay.
type AutoDriver struct {
	service *Service
	delay   time.Duration
	logger  *zap.Logger
}

// NewAutoDriver creates a driver that auto-confirms after delay.
func NewAutoDriver(service *Service, delay time.Duration, logger *zap.Logger) *AutoDriver {
	return &AutoDriver{service: service, delay: delay, logger: logger}
}

func (d *AutoDriver) AfterDelivery(ctx context.Context, n *Notification) {
	// Run detached so a slow confirmation never stalls the consumer
	// loop that delivered the email.
	go func() {
		select {
		case <-time.After(d.delay):
		case <-ctx.Done():
			return
		}

		ok, err := d.service.Confirm(ctx, n.CollaboratorEmail, n.TodoID, n.CollaboratorID, n.Token)
		if err != nil {
			d.logger.Warn("auto-confirm failed",
				zap.Int64("todo_id", n.TodoID),
				zap.Int64("collaborator_id", n.CollaboratorID),
				zap.Error(err))
			return
		}
		if ok {
			d.logger.Info("auto-confirmed collaboration",
				zap.Int64("todo_id", n.TodoID),
				zap.Int64("collaborator_id", n.CollaboratorID))
		}
	}()
}
