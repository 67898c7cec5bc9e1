package collaboration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/todoapp/server/internal/shared/config"
	"github.com/todoapp/server/internal/shared/mail"
	"github.com/todoapp/server/internal/shared/metrics"
	"github.com/todoapp/server/internal/shared/queue"
)

// Receiver polls and acknowledges queue messages.
type Receiver interface {
	Receive(ctx context.Context, queueURL string, max int32, visibility, wait time.Duration) ([]queue.Message, error)
	Delete(ctx context.Context, queueURL, receiptHandle string) error
}

// Worker consumes sharing notifications from the queue and emails the
// invited collaborator. Messages are acknowledged only after the email
// has been handed to the mail relay; anything that fails before that
// point is redelivered and eventually lands in the dead-letter queue
// via the queue's redrive policy.
type Worker struct {
	receiver Receiver
	cfg      *config.QueueConfig
	sender   mail.Sender
	driver   ConfirmationDriver
	external string
	metrics  *metrics.Metrics
	logger   *zap.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewWorker creates a new sharing worker.
func NewWorker(
	receiver Receiver,
	cfg *config.QueueConfig,
	sender mail.Sender,
	driver ConfirmationDriver,
	externalURL string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Worker {
	return &Worker{
		receiver: receiver,
		cfg:      cfg,
		sender:   sender,
		driver:   driver,
		external: externalURL,
		metrics:  m,
		logger:   logger,
	}
}

// Start launches the consumer loops.
func (w *Worker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	workers := w.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.run(ctx)
		}()
	}
}

// Stop cancels the consumer loops and waits for them to drain.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		messages, err := w.receiver.Receive(ctx, w.cfg.SharingQueueURL, 10, w.cfg.Visibility, w.cfg.WaitTime)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("receive sharing messages failed", zap.Error(err))
			// Back off so a broken queue does not spin the loop.
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		for _, msg := range messages {
			w.handle(ctx, msg)
		}
	}
}

func (w *Worker) handle(ctx context.Context, msg queue.Message) {
	n, err := UnmarshalNotification(msg.Body)
	if err != nil {
		// A payload we cannot decode will never succeed; redelivery
		// moves it to the dead-letter queue for inspection.
		w.logger.Error("decode sharing notification failed",
			zap.String("message_id", msg.ID),
			zap.Int("receive_count", msg.ReceiveCount),
			zap.Error(err))
		w.metrics.SharingMessagesTotal.WithLabelValues("decode_error").Inc()
		return
	}

	subject := "A todo was shared with you"
	body := renderInviteBody(w.external, n)

	if err := w.sender.Send(ctx, n.CollaboratorEmail, subject, body); err != nil {
		// Leave the message on the queue; the visibility timeout
		// expires and another attempt is made.
		w.logger.Error("send collaboration email failed",
			zap.String("message_id", msg.ID),
			zap.Int64("todo_id", n.TodoID),
			zap.Int("receive_count", msg.ReceiveCount),
			zap.Error(err))
		w.metrics.SharingMessagesTotal.WithLabelValues("send_error").Inc()
		return
	}
	w.metrics.SharingMailSentTotal.Inc()

	if err := w.receiver.Delete(ctx, w.cfg.SharingQueueURL, msg.ReceiptHandle); err != nil {
		// The email went out but the ack failed; the redelivery will
		// send a duplicate email, which at-least-once delivery allows.
		w.logger.Warn("acknowledge sharing message failed",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.metrics.SharingMessagesTotal.WithLabelValues("ack_error").Inc()
		return
	}

	w.logger.Info("informed collaborator about shared todo",
		zap.Int64("todo_id", n.TodoID),
		zap.Int64("collaborator_id", n.CollaboratorID))
	w.metrics.SharingMessagesTotal.WithLabelValues("delivered").Inc()

	w.driver.AfterDelivery(ctx, n)
}

// renderInviteBody builds the plain-text invitation email. The link
// targets the authenticated confirmation endpoint, so the collaborator
// has to be logged in when clicking it.
func renderInviteBody(externalURL string, n *Notification) string {
	return fmt.Sprintf(`Hi %s,

someone shared a todo from %s with you.

Information about the shared todo item:

Title: %s
Description: %s
Priority: %s

You can accept the collaboration by clicking this link: %s/todo/%d/collaborations/%d/confirm?token=%s

Kind regards,
The Todo Team`,
		n.CollaboratorName,
		externalURL,
		n.TodoTitle,
		n.TodoDescription,
		n.TodoPriority,
		externalURL,
		n.TodoID,
		n.CollaboratorID,
		n.Token,
	)
}
