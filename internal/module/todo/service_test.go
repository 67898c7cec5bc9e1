package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/todoapp/server/internal/module/person"
)

type fakeRepo struct {
	todos   map[int64]*Todo
	nextID  int64
	deleted []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{todos: make(map[int64]*Todo)}
}

func (r *fakeRepo) Create(_ context.Context, t *Todo) error {
	r.nextID++
	t.ID = r.nextID
	r.todos[t.ID] = t
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

func (r *fakeRepo) GetByIDAndOwnerEmail(_ context.Context, id int64, ownerEmail string) (*Todo, error) {
	t, ok := r.todos[id]
	if !ok || t.Owner == nil || t.Owner.Email != ownerEmail {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

func (r *fakeRepo) ListByOwnerEmail(_ context.Context, email string) ([]*Todo, error) {
	var out []*Todo
	for _, t := range r.todos {
		if t.Owner != nil && t.Owner.Email == email {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByCollaboratorEmail(_ context.Context, email string) ([]*Todo, error) {
	var out []*Todo
	for _, t := range r.todos {
		for _, c := range t.Collaborators {
			if c.Email == email {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, t *Todo) error {
	r.todos[t.ID] = t
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(r.todos, id)
	r.deleted = append(r.deleted, id)
	return nil
}

var (
	owner        = &person.Person{ID: 1, Name: "Alice", Email: "alice@example.com"}
	collaborator = &person.Person{ID: 2, Name: "Bob", Email: "bob@example.com"}
)

func seedTodo(repo *fakeRepo) *Todo {
	t := &Todo{
		Title:         "Buy milk",
		Priority:      PriorityLow,
		Status:        StatusOpen,
		OwnerID:       owner.ID,
		Owner:         owner,
		Collaborators: []person.Person{*collaborator},
	}
	_ = repo.Create(context.Background(), t)
	return t
}

func TestService_Create(t *testing.T) {
	s := NewService(newFakeRepo(), zap.NewNop())

	t.Run("defaults priority to low", func(t *testing.T) {
		created, err := s.Create(context.Background(), owner.ID, &CreateRequest{Title: "Buy milk"})
		require.NoError(t, err)
		assert.Equal(t, PriorityLow, created.Priority)
		assert.Equal(t, StatusOpen, created.Status)
		assert.Equal(t, owner.ID, created.OwnerID)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		_, err := s.Create(context.Background(), owner.ID, &CreateRequest{
			Title:    "Buy milk",
			Priority: "URGENT",
		})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestService_Get(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop())
	seeded := seedTodo(repo)

	t.Run("owner sees the todo", func(t *testing.T) {
		got, err := s.Get(context.Background(), seeded.ID, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, got.ID)
	})

	t.Run("collaborator sees the todo", func(t *testing.T) {
		got, err := s.Get(context.Background(), seeded.ID, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, got.ID)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		_, err := s.Get(context.Background(), seeded.ID, "eve@example.com")
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})
}

func TestService_Update(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop())
	seeded := seedTodo(repo)

	t.Run("owner updates fields", func(t *testing.T) {
		title := "Buy oat milk"
		status := StatusDone
		got, err := s.Update(context.Background(), seeded.ID, "alice@example.com", &UpdateRequest{
			Title:  &title,
			Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", got.Title)
		assert.Equal(t, StatusDone, got.Status)
	})

	t.Run("collaborator may not update", func(t *testing.T) {
		title := "hijacked"
		_, err := s.Update(context.Background(), seeded.ID, "bob@example.com", &UpdateRequest{Title: &title})
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})

	t.Run("rejects invalid priority", func(t *testing.T) {
		bad := Priority("URGENT")
		_, err := s.Update(context.Background(), seeded.ID, "alice@example.com", &UpdateRequest{Priority: &bad})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestService_Delete(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop())
	seeded := seedTodo(repo)

	t.Run("collaborator may not delete", func(t *testing.T) {
		err := s.Delete(context.Background(), seeded.ID, "bob@example.com")
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := s.Delete(context.Background(), seeded.ID, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, []int64{seeded.ID}, repo.deleted)
	})
}

func TestService_List(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, zap.NewNop())
	seedTodo(repo)

	resp, err := s.List(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, resp.Owned)
	assert.Len(t, resp.Shared, 1)
}
