package todo

import (
	"context"

	"go.uber.org/zap"
)

// Service provides todo business logic.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new todo service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create creates a todo owned by the given person.
func (s *Service) Create(ctx context.Context, ownerID int64, req *CreateRequest) (*Todo, error) {
	priority := req.Priority
	if priority == "" {
		priority = PriorityLow
	}
	if !IsValidPriority(priority) {
		return nil, ErrInvalidPriority
	}

	t := &Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Status:      StatusOpen,
		OwnerID:     ownerID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("todo created",
		zap.Int64("todo_id", t.ID),
		zap.Int64("owner_id", ownerID),
	)

	return t, nil
}

// List returns the todos the caller owns and the todos shared with them.
func (s *Service) List(ctx context.Context, email string) (*ListResponse, error) {
	owned, err := s.repo.ListByOwnerEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	shared, err := s.repo.ListByCollaboratorEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &ListResponse{Owned: owned, Shared: shared}, nil
}

// Get returns a todo visible to the caller: its owner or one of its
// collaborators.
func (s *Service) Get(ctx context.Context, id int64, email string) (*Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Owner != nil && t.Owner.Email == email {
		return t, nil
	}
	for _, c := range t.Collaborators {
		if c.Email == email {
			return t, nil
		}
	}

	// Not visible; do not reveal existence.
	return nil, ErrTodoNotFound
}

// Update modifies a todo. Only the owner may update.
func (s *Service) Update(ctx context.Context, id int64, ownerEmail string, req *UpdateRequest) (*Todo, error) {
	t, err := s.repo.GetByIDAndOwnerEmail(ctx, id, ownerEmail)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		if !IsValidPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a todo. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id int64, ownerEmail string) error {
	t, err := s.repo.GetByIDAndOwnerEmail(ctx, id, ownerEmail)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, t.ID); err != nil {
		return err
	}

	s.logger.Info("todo deleted",
		zap.Int64("todo_id", t.ID),
		zap.String("owner_email", ownerEmail),
	)

	return nil
}
