package collaboration

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/todoapp/server/internal/module/person"
	"github.com/todoapp/server/internal/module/todo"
)

// Enqueuer sends a message body to the sharing queue.
type Enqueuer interface {
	Send(ctx context.Context, queueURL, body string) error
}

// Notifier pushes a payload to the owner's realtime topic.
type Notifier interface {
	Publish(ctx context.Context, ownerEmail, payload string) error
}

// Service drives the sharing workflow: invitation, delivery hand-off
// and confirmation.
type Service struct {
	repo       Repository
	todoRepo   todo.Repository
	personRepo person.Repository
	queue      Enqueuer
	queueURL   string
	notifier   Notifier
	logger     *zap.Logger
}

// NewService creates a new collaboration service.
func NewService(
	repo Repository,
	todoRepo todo.Repository,
	personRepo person.Repository,
	queue Enqueuer,
	queueURL string,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		todoRepo:   todoRepo,
		personRepo: personRepo,
		queue:      queue,
		queueURL:   queueURL,
		notifier:   notifier,
		logger:     logger,
	}
}

// Share invites a person to collaborate on one of the caller's todos.
// The invitation is persisted before the notification is enqueued, so a
// crash between the two leaves a confirmable request rather than an
// email pointing at nothing. Repeating the call for the same pair is a
// no-op that returns the collaborator's name again.
func (s *Service) Share(ctx context.Context, ownerEmail string, todoID, collaboratorID int64) (string, error) {
	t, err := s.todoRepo.GetByIDAndOwnerEmail(ctx, todoID, ownerEmail)
	if err != nil {
		if errors.Is(err, todo.ErrTodoNotFound) {
			return "", ErrTodoNotFound
		}
		return "", fmt.Errorf("load todo: %w", err)
	}

	collaborator, err := s.personRepo.GetByID(ctx, collaboratorID)
	if err != nil {
		if errors.Is(err, person.ErrPersonNotFound) {
			return "", ErrCollaboratorNotFound
		}
		return "", fmt.Errorf("load collaborator: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	req := &CollaborationRequest{
		TodoID:         t.ID,
		CollaboratorID: collaborator.ID,
		Token:          token,
	}

	created, err := s.repo.CreateIfAbsent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("persist collaboration request: %w", err)
	}
	if !created {
		// A pending invitation already exists; do not enqueue a
		// second notification.
		s.logger.Info("collaboration request already pending",
			zap.Int64("todo_id", t.ID),
			zap.Int64("collaborator_id", collaborator.ID))
		return collaborator.Name, nil
	}

	notification := NewNotification(req, t, collaborator)
	body, err := notification.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.queue.Send(ctx, s.queueURL, body); err != nil {
		return "", fmt.Errorf("enqueue notification: %w", err)
	}

	s.logger.Info("todo shared",
		zap.Int64("todo_id", t.ID),
		zap.Int64("collaborator_id", collaborator.ID))

	return collaborator.Name, nil
}

// Confirm accepts a pending invitation. The caller must be the invited
// collaborator and present the single-use token from the invitation
// email. The first successful confirmation adds the collaborator and
// notifies the owner; any repeat reports ErrInvalidRequest because the
// request no longer exists.
func (s *Service) Confirm(ctx context.Context, callerEmail string, todoID, collaboratorID int64, token string) (bool, error) {
	collaborator, err := s.personRepo.GetByID(ctx, collaboratorID)
	if err != nil {
		if errors.Is(err, person.ErrPersonNotFound) {
			return false, ErrInvalidRequest
		}
		return false, fmt.Errorf("load collaborator: %w", err)
	}
	if collaborator.Email != callerEmail {
		// Only the invited person may accept their own invitation.
		return false, ErrInvalidRequest
	}

	req, err := s.repo.FindByTodoAndCollaborator(ctx, todoID, collaboratorID)
	if err != nil {
		return false, fmt.Errorf("load collaboration request: %w", err)
	}
	if req == nil {
		return false, ErrInvalidRequest
	}
	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(token)) != 1 {
		return false, ErrInvalidRequest
	}

	return s.accept(ctx, req, collaborator)
}

func (s *Service) accept(ctx context.Context, req *CollaborationRequest, collaborator *person.Person) (bool, error) {
	accepted, err := s.repo.Accept(ctx, req)
	if err != nil {
		return false, fmt.Errorf("accept collaboration request: %w", err)
	}
	if !accepted {
		// Lost the race to a concurrent confirmation.
		return false, ErrInvalidRequest
	}

	t, err := s.todoRepo.GetByID(ctx, req.TodoID)
	if err != nil {
		// The collaborator is already added; report success and skip
		// the push.
		s.logger.Warn("load todo for realtime push failed",
			zap.Int64("todo_id", req.TodoID),
			zap.Error(err))
		return true, nil
	}

	if t.Owner == nil {
		s.logger.Warn("todo owner missing for realtime push",
			zap.Int64("todo_id", req.TodoID))
		return true, nil
	}

	payload := fmt.Sprintf("%s has accepted your invitation to collaborate on todo #%d %q.",
		collaborator.Name, t.ID, t.Title)
	if err := s.notifier.Publish(ctx, t.Owner.Email, payload); err != nil {
		// Realtime delivery is best effort; the confirmation itself
		// has already committed.
		s.logger.Warn("realtime push failed",
			zap.String("owner_email", t.Owner.Email),
			zap.Error(err))
	}

	s.logger.Info("collaboration confirmed",
		zap.Int64("todo_id", req.TodoID),
		zap.Int64("collaborator_id", req.CollaboratorID))

	return true, nil
}

// generateToken returns a URL-safe single-use token.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
