package collaboration

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines collaboration-request data access.
type Repository interface {
	// CreateIfAbsent inserts the request unless a pending one already
	// exists for the same (todo, collaborator) pair. It reports whether
	// the row was inserted. The uniqueness check happens in the store,
	// so concurrent callers cannot both insert.
	CreateIfAbsent(ctx context.Context, req *CollaborationRequest) (bool, error)

	// FindByTodoAndCollaborator returns the pending request for the
	// pair, or nil when none exists.
	FindByTodoAndCollaborator(ctx context.Context, todoID, collaboratorID int64) (*CollaborationRequest, error)

	// Accept atomically adds the collaborator to the todo and deletes
	// the request. It reports false when the request was already gone,
	// which is how a second concurrent confirmation observes that it
	// lost the race.
	Accept(ctx context.Context, req *CollaborationRequest) (bool, error)
}

// todoCollaborator maps the join table shared with the todo module.
type todoCollaborator struct {
	TodoID   int64 `gorm:"primaryKey"`
	PersonID int64 `gorm:"primaryKey"`
}

func (todoCollaborator) TableName() string {
	return "todo_collaborators"
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new collaboration repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateIfAbsent(ctx context.Context, req *CollaborationRequest) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "todo_id"}, {Name: "collaborator_id"}},
			DoNothing: true,
		}).
		Create(req)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindByTodoAndCollaborator(ctx context.Context, todoID, collaboratorID int64) (*CollaborationRequest, error) {
	var req CollaborationRequest
	err := r.db.WithContext(ctx).
		Where("todo_id = ? AND collaborator_id = ?", todoID, collaboratorID).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no pending request is not an error
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) Accept(ctx context.Context, req *CollaborationRequest) (bool, error) {
	accepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Delete first: rows affected tells us whether this caller won.
		result := tx.Where("id = ?", req.ID).Delete(&CollaborationRequest{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(&todoCollaborator{
			TodoID:   req.TodoID,
			PersonID: req.CollaboratorID,
		}).Error; err != nil {
			return err
		}

		accepted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return accepted, nil
}
