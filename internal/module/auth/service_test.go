package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/server/internal/module/person"
)

type fakePersonRepo struct {
	persons map[int64]*person.Person
	nextID  int64
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{persons: make(map[int64]*person.Person)}
}

func (r *fakePersonRepo) Create(_ context.Context, p *person.Person) error {
	r.nextID++
	p.ID = r.nextID
	r.persons[p.ID] = p
	return nil
}

func (r *fakePersonRepo) GetByID(_ context.Context, id int64) (*person.Person, error) {
	p, ok := r.persons[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	return p, nil
}

func (r *fakePersonRepo) GetByEmail(_ context.Context, email string) (*person.Person, error) {
	for _, p := range r.persons {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, person.ErrPersonNotFound
}

func (r *fakePersonRepo) List(context.Context) ([]*person.Person, error) {
	out := make([]*person.Person, 0, len(r.persons))
	for _, p := range r.persons {
		out = append(out, p)
	}
	return out, nil
}

func newTestService(repo person.Repository) *Service {
	jwt := NewJWTManager("test-secret-key-that-is-long-enough", 15*time.Minute)
	return NewService(repo, jwt, []string{"DUKE", "SPRING"}, zap.NewNop())
}

func TestService_Register(t *testing.T) {
	t.Run("creates account with valid invitation code", func(t *testing.T) {
		repo := newFakePersonRepo()
		s := newTestService(repo)

		p, err := s.Register(context.Background(), &RegisterRequest{
			Name:           "Alice",
			Email:          "Alice@Example.com",
			Password:       "correct-horse",
			InvitationCode: "DUKE",
		})
		require.NoError(t, err)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "alice@example.com", p.Email)

		// Stored as a bcrypt hash, never plain.
		assert.NotEqual(t, "correct-horse", p.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte("correct-horse")))
	})

	t.Run("rejects invalid invitation code", func(t *testing.T) {
		s := newTestService(newFakePersonRepo())

		_, err := s.Register(context.Background(), &RegisterRequest{
			Name:           "Mallory",
			Email:          "mallory@example.com",
			Password:       "whatever1",
			InvitationCode: "GUESSED",
		})
		assert.ErrorIs(t, err, ErrInvalidInvitationCode)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakePersonRepo()
		s := newTestService(repo)

		req := &RegisterRequest{
			Name:           "Alice",
			Email:          "alice@example.com",
			Password:       "correct-horse",
			InvitationCode: "SPRING",
		}
		_, err := s.Register(context.Background(), req)
		require.NoError(t, err)

		_, err = s.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	repo := newFakePersonRepo()
	s := newTestService(repo)

	_, err := s.Register(context.Background(), &RegisterRequest{
		Name:           "Alice",
		Email:          "alice@example.com",
		Password:       "correct-horse",
		InvitationCode: "DUKE",
	})
	require.NoError(t, err)

	t.Run("issues token for valid credentials", func(t *testing.T) {
		tokens, err := s.Login(context.Background(), &LoginRequest{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", tokens.TokenType)

		claims, err := s.jwt.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := s.Login(context.Background(), &LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		_, err := s.Login(context.Background(), &LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
