package person

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrPersonNotFound indicates the person does not exist.
var ErrPersonNotFound = errors.New("person not found")

// Repository defines person data access.
type Repository interface {
	Create(ctx context.Context, p *Person) error
	GetByID(ctx context.Context, id int64) (*Person, error)
	GetByEmail(ctx context.Context, email string) (*Person, error)
	List(ctx context.Context) ([]*Person, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new person repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Person, error) {
	var people []*Person
	err := r.db.WithContext(ctx).Order("name ASC").Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}
