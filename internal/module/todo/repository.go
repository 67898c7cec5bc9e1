package todo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrTodoNotFound indicates the todo does not exist or is not visible
// to the caller.
var ErrTodoNotFound = errors.New("todo not found")

// Repository defines todo data access.
type Repository interface {
	Create(ctx context.Context, t *Todo) error
	GetByID(ctx context.Context, id int64) (*Todo, error)
	// GetByIDAndOwnerEmail returns the todo only when its owner's email
	// matches. Used for ownership checks without a separate lookup.
	GetByIDAndOwnerEmail(ctx context.Context, id int64, ownerEmail string) (*Todo, error)
	ListByOwnerEmail(ctx context.Context, email string) ([]*Todo, error)
	ListByCollaboratorEmail(ctx context.Context, email string) ([]*Todo, error)
	Update(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new todo repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Todo, error) {
	var t Todo
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Collaborators").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetByIDAndOwnerEmail(ctx context.Context, id int64, ownerEmail string) (*Todo, error) {
	var t Todo
	err := r.db.WithContext(ctx).
		Joins("JOIN persons ON persons.id = todos.owner_id").
		Where("todos.id = ? AND persons.email = ?", id, ownerEmail).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListByOwnerEmail(ctx context.Context, email string) ([]*Todo, error) {
	var todos []*Todo
	err := r.db.WithContext(ctx).
		Joins("JOIN persons ON persons.id = todos.owner_id").
		Where("persons.email = ?", email).
		Order("todos.id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *repository) ListByCollaboratorEmail(ctx context.Context, email string) ([]*Todo, error) {
	var todos []*Todo
	err := r.db.WithContext(ctx).
		Joins("JOIN todo_collaborators ON todo_collaborators.todo_id = todos.id").
		Joins("JOIN persons ON persons.id = todo_collaborators.person_id").
		Where("persons.email = ?", email).
		Order("todos.id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *repository) Update(ctx context.Context, t *Todo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
